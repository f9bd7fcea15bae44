package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the service configuration. Environment variables are
// parsed from the UPTIME_ prefix, e.g. UPTIME_SERVER_PORT.
type Config struct {
	ServerPort int    `envconfig:"SERVER_PORT" default:"8080"`
	DataDir    string `envconfig:"DATA_DIR" default:".data"`
	MaxChecks  int    `envconfig:"MAX_CHECKS" default:"5"`
	GinMode    string `envconfig:"GIN_MODE" default:"release"`
}

// Load parses configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("uptime", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment configuration: %w", err)
	}
	if cfg.MaxChecks < 1 {
		return nil, fmt.Errorf("UPTIME_MAX_CHECKS must be at least 1, got %d", cfg.MaxChecks)
	}
	return &cfg, nil
}
