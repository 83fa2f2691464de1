package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/GriffinCanCode/miniapp/internal/infrastructure/logging"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	App     AppConfig
	Logging LogConfig
	Metrics MetricsConfig
}

// AppConfig holds runner and persistence configuration.
type AppConfig struct {
	ResourcesPath string `envconfig:"MINIAPP_RESOURCES_PATH"`
	Format        string `envconfig:"MINIAPP_FORMAT"`
	Resume        bool   `envconfig:"MINIAPP_RESUME"`
	AutoSave      bool   `envconfig:"MINIAPP_AUTOSAVE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL"`
	Development bool   `envconfig:"LOG_DEV"`
	Output      string `envconfig:"LOG_OUTPUT"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Textfile string `envconfig:"MINIAPP_METRICS_FILE"`
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load reads the given .env files (missing ones are skipped) and then
// overlays environment variables on Default.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
	}

	cfg := Default()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{
			ResourcesPath: ".",
			Format:        "json",
		},
		Logging: LogConfig{
			Level:  "warn",
			Output: "stderr",
		},
	}
}

// Validate checks values envconfig cannot check on its own.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.App.ResourcesPath) == "" {
		return fmt.Errorf("invalid config: resources path cannot be empty")
	}
	if strings.TrimSpace(c.App.Format) == "" {
		return fmt.Errorf("invalid config: format cannot be empty")
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid config: unknown log level %q", c.Logging.Level)
	}
	return nil
}

// Logger converts the logging section into a logger configuration.
func (c LogConfig) Logger() logging.Config {
	output := c.Output
	if output == "" {
		output = "stderr"
	}
	return logging.Config{
		Level:       strings.ToLower(c.Level),
		Development: c.Development,
		OutputPaths: []string{output},
	}
}
