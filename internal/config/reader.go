package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"

	// EnvironmentVariable overrides the environment in a config file
	EnvironmentVariable = "FILE_EXPLORER_ENVIRONMENT"

	DefaultStorageKey   = "directory-structure"
	DefaultReadLatency  = 500 * time.Millisecond
	DefaultWriteLatency = 300 * time.Millisecond
)

type Config struct {
	Environment     Environment   `toml:"environment"`
	ConfigDirectory string        `toml:"config_directory"`
	LogDirectory    string        `toml:"log_directory"`
	Storage         StorageConfig `toml:"storage"`
}

type StorageConfig struct {
	// Key is the name of the record holding the whole item collection
	Key string `toml:"key"`

	// ReadLatency and WriteLatency simulate a remote API
	ReadLatency  time.Duration `toml:"read_latency"`
	WriteLatency time.Duration `toml:"write_latency"`
}

func defaultConfig(configDir string) Config {
	return Config{
		Environment:     EnvironmentProduction,
		ConfigDirectory: configDir,
		LogDirectory:    filepath.Join(configDir, "logs"),
		Storage: StorageConfig{
			Key:          DefaultStorageKey,
			ReadLatency:  DefaultReadLatency,
			WriteLatency: DefaultWriteLatency,
		},
	}
}

// ReadConfig reads a TOML file at configPath, or at ~/.config/file-explorer/default.toml
// if configPath is empty. A missing file isn't an error and defaults are used.
func ReadConfig(configPath string) (Config, error) {
	var conf Config

	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return conf, fmt.Errorf("os.UserHomeDir: %w", err)
		}
		configDir := filepath.Join(homeDir, ".config", "file-explorer")
		if err = os.MkdirAll(configDir, 0755); err != nil {
			return conf, fmt.Errorf("os.MkdirAll: %w", err)
		}
		configPath = filepath.Join(configDir, "default.toml")
	}

	conf = defaultConfig(filepath.Dir(configPath))
	file, err := os.Open(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return conf.withEnvironment().validated()
	}
	if err != nil {
		return conf, fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return conf, fmt.Errorf("io.ReadAll: %w", err)
	}
	if _, err := toml.Decode(string(contents), &conf); err != nil {
		return conf, fmt.Errorf("toml.Decode: %w", err)
	}
	return conf.withEnvironment().validated()
}

func (conf Config) validated() (Config, error) {
	if err := conf.validate(); err != nil {
		return conf, fmt.Errorf("invalid config: %w", err)
	}
	return conf, nil
}

func (conf Config) withEnvironment() Config {
	if env := os.Getenv(EnvironmentVariable); env != "" {
		conf.Environment = Environment(env)
	}
	return conf
}

func (conf Config) validate() error {
	errs := make([]error, 0)
	switch conf.Environment {
	case EnvironmentDevelopment, EnvironmentProduction:
	default:
		errs = append(errs, fmt.Errorf("unknown environment: %q", conf.Environment))
	}
	if conf.Storage.Key == "" {
		errs = append(errs, errors.New("storage.key is empty"))
	}
	if conf.Storage.ReadLatency < 0 || conf.Storage.WriteLatency < 0 {
		errs = append(errs, errors.New("storage latency must not be negative"))
	}
	return errors.Join(errs...)
}
