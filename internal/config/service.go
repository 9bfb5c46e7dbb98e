package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/wailsapp/wails/v3/pkg/application"
)

type Service struct {
	config Config
}

func NewService(config Config) (*Service, error) {
	// Ensure the config directory exists for a database file.
	_, err := os.Stat(config.ConfigDirectory)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(config.ConfigDirectory, 0755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll: %w", err)
		}
	}

	return &Service{
		config: config,
	}, nil
}

func (service *Service) OnStartup(ctx context.Context, options application.ServiceOptions) error {
	return nil
}

type FrontendConfig struct {
	Environment string `json:"environment"`
	StorageKey  string `json:"storageKey"`
}

func (service *Service) GetConfig() FrontendConfig {
	return FrontendConfig{
		Environment: string(service.config.Environment),
		StorageKey:  service.config.Storage.Key,
	}
}
