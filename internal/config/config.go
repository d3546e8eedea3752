// Package config loads command defaults from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds defaults for command flags. Flags always win.
type Config struct {
	TeamID    int64  `envconfig:"PHOENIX_TEAM_ID" default:"1"`
	CreatedBy int64  `envconfig:"PHOENIX_CREATED_BY" default:"1"`
	Dialect   string `envconfig:"PHOENIX_DIALECT" default:"mysql"`
	OutputDir string `envconfig:"PHOENIX_OUTPUT_DIR" default:"."`
	// LogLevel applies to --verbose output; empty means debug.
	LogLevel string `envconfig:"PHOENIX_LOG_LEVEL"`
}

// Load reads configuration from the environment.
// Variables in envFile are loaded first without overriding variables that
// are already set; a missing envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if cfg.TeamID < 0 {
		return nil, fmt.Errorf("PHOENIX_TEAM_ID must not be negative, got %d", cfg.TeamID)
	}
	if cfg.CreatedBy < 0 {
		return nil, fmt.Errorf("PHOENIX_CREATED_BY must not be negative, got %d", cfg.CreatedBy)
	}
	return &cfg, nil
}

// Default returns the configuration with every variable unset.
func Default() *Config {
	return &Config{TeamID: 1, CreatedBy: 1, Dialect: "mysql", OutputDir: "."}
}
