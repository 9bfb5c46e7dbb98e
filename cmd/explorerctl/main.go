package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/michael-freling/file-explorer/internal/config"
	"github.com/michael-freling/file-explorer/internal/db"
	"github.com/michael-freling/file-explorer/internal/directory"
	"github.com/michael-freling/file-explorer/internal/export"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := newRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}

type runner struct {
	logger   *slog.Logger
	dbClient *db.Client
	store    *directory.Store
	api      *directory.API
}

func newRunner(logger *slog.Logger, configPath string) (*runner, error) {
	conf, err := config.ReadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.ReadConfig: %w", err)
	}
	if err := os.MkdirAll(conf.ConfigDirectory, 0755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}
	dbClient, err := db.FromConfig(conf, logger)
	if err != nil {
		return nil, fmt.Errorf("db.FromConfig: %w", err)
	}
	if err := dbClient.Migrate(); err != nil {
		dbClient.Close()
		return nil, fmt.Errorf("dbClient.Migrate: %w", err)
	}

	// no artificial latency for a CLI
	store := directory.NewStore(logger, dbClient.KeyValue(), conf.Storage.Key)
	return &runner{
		logger:   logger,
		dbClient: dbClient,
		store:    store,
		api:      directory.NewAPI(logger, store),
	}, nil
}

func (runner *runner) Close() error {
	return runner.dbClient.Close()
}

func printTree(w io.Writer, nodes []*directory.Node, depth int) {
	for _, node := range nodes {
		suffix := ""
		if node.IsFolder() {
			suffix = "/"
		}
		fmt.Fprintf(w, "%s%s%s (%s)\n", strings.Repeat("  ", depth), node.Name, suffix, node.ID)
		printTree(w, node.Children, depth+1)
	}
}

func optionalID(args []string, index int) *string {
	if len(args) <= index || args[index] == "" {
		return nil
	}
	return &args[index]
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	rootCommand := &cobra.Command{
		Use:          "explorerctl",
		Short:        "Inspect and maintain items of file-explorer",
		SilenceUsage: true,
	}

	var configPath string
	rootCommand.PersistentFlags().StringVar(&configPath, "config", "", "path to the configuration file")

	withRunner := func(f func(cmd *cobra.Command, args []string, runner *runner) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner(logger, configPath)
			if err != nil {
				return fmt.Errorf("newRunner: %w", err)
			}
			defer runner.Close()
			return f(cmd, args, runner)
		}
	}

	treeCommand := &cobra.Command{
		Use:   "tree",
		Short: "Print items as a tree",
		Args:  cobra.NoArgs,
		RunE: withRunner(func(cmd *cobra.Command, args []string, runner *runner) error {
			items, err := runner.api.GetItems(cmd.Context())
			if err != nil {
				return fmt.Errorf("api.GetItems: %w", err)
			}
			printTree(cmd.OutOrStdout(), directory.BuildTree(items), 0)
			return nil
		}),
	}

	var kind string
	var parentID string
	createCommand := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a file or a folder",
		Args:  cobra.ExactArgs(1),
		RunE: withRunner(func(cmd *cobra.Command, args []string, runner *runner) error {
			input := directory.CreateItemInput{
				Name: args[0],
				Kind: directory.Kind(kind),
			}
			if parentID != "" {
				input.ParentID = &parentID
			}
			item, err := runner.api.CreateItem(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("api.CreateItem: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), item.ID)
			return nil
		}),
	}
	createCommand.Flags().StringVar(&kind, "kind", string(directory.KindFile), "file or folder")
	createCommand.Flags().StringVar(&parentID, "parent", "", "id of a parent folder. The root if empty")

	renameCommand := &cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Rename an item",
		Args:  cobra.ExactArgs(2),
		RunE: withRunner(func(cmd *cobra.Command, args []string, runner *runner) error {
			if _, err := runner.api.UpdateItem(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("api.UpdateItem: %w", err)
			}
			return nil
		}),
	}

	moveCommand := &cobra.Command{
		Use:   "move [id] [parentId]",
		Short: "Move an item into a folder, or to the root without parentId",
		Args:  cobra.RangeArgs(1, 2),
		RunE: withRunner(func(cmd *cobra.Command, args []string, runner *runner) error {
			if _, err := runner.api.MoveItem(cmd.Context(), args[0], optionalID(args, 1)); err != nil {
				return fmt.Errorf("api.MoveItem: %w", err)
			}
			return nil
		}),
	}

	deleteCommand := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an item with its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: withRunner(func(cmd *cobra.Command, args []string, runner *runner) error {
			removedIDs, err := runner.api.DeleteItem(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("api.DeleteItem: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(removedIDs, "\n"))
			return nil
		}),
	}

	var overwrite bool
	exportCommand := &cobra.Command{
		Use:   "export [exportDirectory]",
		Short: "Export items as JSON files",
		Args:  cobra.ExactArgs(1),
		RunE: withRunner(func(cmd *cobra.Command, args []string, runner *runner) error {
			exporter := export.NewBatchExporter(runner.logger, runner.store, export.BatchExporterOptions{
				Overwrite: overwrite,
			})
			if err := exporter.Export(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("exporter.Export: %w", err)
			}
			return nil
		}),
	}
	exportCommand.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing files")

	resetCommand := &cobra.Command{
		Use:   "reset",
		Short: "Replace all items with the initial ones",
		Args:  cobra.NoArgs,
		RunE: withRunner(func(cmd *cobra.Command, args []string, runner *runner) error {
			if _, err := runner.store.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("store.Reset: %w", err)
			}
			return nil
		}),
	}

	rootCommand.AddCommand(
		treeCommand,
		createCommand,
		renameCommand,
		moveCommand,
		deleteCommand,
		exportCommand,
		resetCommand,
	)
	return rootCommand
}
