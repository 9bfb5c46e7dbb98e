package main

import (
	"embed"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/michael-freling/file-explorer/internal/config"
	"github.com/michael-freling/file-explorer/internal/db"
	"github.com/michael-freling/file-explorer/internal/directory"
	"github.com/michael-freling/file-explorer/internal/frontend"
	"github.com/wailsapp/wails/v3/pkg/application"
)

// assets built by the frontend

//go:embed frontend/dist
var assets embed.FS

func newLogger(conf config.Config) (*slog.Logger, error) {
	if err := os.MkdirAll(conf.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	logDirectory := filepath.Join(conf.LogDirectory, string(conf.Environment)+".log")
	fmt.Printf("log is output in a directory: %s\n", logDirectory)
	file, err := os.OpenFile(
		logDirectory,
		os.O_RDWR|os.O_APPEND|os.O_CREATE,
		0644,
	)
	if err != nil {
		return nil, fmt.Errorf("os.OpenFile: %w", err)
	}
	var slogHandler slog.Handler
	if conf.Environment == config.EnvironmentDevelopment {
		slogHandler = slog.NewJSONHandler(
			io.MultiWriter(os.Stdout, file),
			&slog.HandlerOptions{
				Level: slog.LevelDebug,
			},
		)
	}
	if conf.Environment == config.EnvironmentProduction {
		// -H windowgui disables an output on stdout
		slogHandler = slog.NewJSONHandler(
			file,
			&slog.HandlerOptions{
				Level: slog.LevelInfo,
			},
		)
	}
	logger := slog.New(slogHandler)
	slog.SetDefault(logger)
	return logger, nil
}

// main reads a config, sets up a logger and runs a desktop application until its window is closed.
func main() {
	// .env is optional
	_ = godotenv.Load()

	conf, err := config.ReadConfig("")
	if err != nil {
		log.Fatalf("config.ReadConfig: %v", err)
	}
	logger, err := newLogger(conf)
	if err != nil {
		log.Fatalf("newLogger: %v", err)
	}

	if err := runMain(conf, logger); err != nil {
		logger.Error("runMain", "error", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func runMain(conf config.Config, logger *slog.Logger) error {
	configService, err := config.NewService(conf)
	if err != nil {
		return fmt.Errorf("config.NewService: %w", err)
	}

	dbClient, err := db.FromConfig(conf, logger)
	if err != nil {
		return fmt.Errorf("db.FromConfig: %w", err)
	}
	if err := dbClient.Migrate(); err != nil {
		return fmt.Errorf("dbClient.Migrate: %w", err)
	}

	store := directory.StoreFromConfig(logger, conf, dbClient.KeyValue())
	coordinator := directory.NewCoordinator(logger, directory.NewAPI(logger, store))

	title := "file-explorer"
	app := application.New(application.Options{
		Name:        title,
		Description: "An explorer of files and folders",
		Logger:      logger,
		Services: []application.Service{
			application.NewService(configService),
			application.NewService(frontend.NewDirectoryService(logger, coordinator)),
		},
		Assets: application.AssetOptions{
			Handler:        application.AssetFileServerFS(assets),
			DisableLogging: conf.Environment == config.EnvironmentProduction,
		},
		Mac: application.MacOptions{
			ApplicationShouldTerminateAfterLastWindowClosed: true,
		},
		PanicHandler: func(v any) {
			logger.Error("panic happens", "v", v)
		},
		OnShutdown: func() {
			dbClient.Close()
		},
	})

	app.NewWebviewWindowWithOptions(application.WebviewWindowOptions{
		Title: title,
		Mac: application.MacWindow{
			InvisibleTitleBarHeight: 50,
			Backdrop:                application.MacBackdropTranslucent,
			TitleBar:                application.MacTitleBarHiddenInset,
		},
		BackgroundColour: application.NewRGB(27, 38, 54),
		URL:              "/",
	})

	logger.Info("Starting an application")
	// blocks until the window is closed
	if err := app.Run(); err != nil {
		return fmt.Errorf("app.Run: %w", err)
	}
	return nil
}
