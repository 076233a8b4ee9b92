// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds process-level configuration. Club-level settings (start
// date, rotation order, awards) are data and live in the settings store,
// not here.
type Config struct {
	DbPath   string `envconfig:"DB_PATH" default:"./data/club.db"`
	Port     uint   `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return cfg, nil
}

// ListenAddress returns the address the API server binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf(":%d", c.Port)
}
