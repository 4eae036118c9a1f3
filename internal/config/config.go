// Package config loads obligo settings from the user config file and
// OBLIGO_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client settings.
type Config struct {
	// ServerURL is the base URL of the obligation backend.
	ServerURL string `mapstructure:"server_url"`
	// PageSize is the default number of obligations per page (1-100).
	PageSize int `mapstructure:"page_size"`
	// TimeoutSeconds is the HTTP request timeout. Uploads of large
	// documents can take a while because extraction runs inline.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ServerURL:      "http://localhost:8000",
		PageSize:       10,
		TimeoutSeconds: 120,
	}
}

// SetDefaults registers defaults, the config file location, and the OBLIGO_
// env prefix with viper. Call once at startup before Load.
func SetDefaults() {
	d := Default()
	viper.SetDefault("server_url", d.ServerURL)
	viper.SetDefault("page_size", d.PageSize)
	viper.SetDefault("timeout_seconds", d.TimeoutSeconds)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(ConfigDir())

	viper.SetEnvPrefix("OBLIGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// Load unmarshals and validates the current configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the backend would reject.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url must not be empty")
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100, got %d", c.PageSize)
	}
	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// ConfigDir returns the user's obligo config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "obligo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".obligo"
	}
	return filepath.Join(home, ".config", "obligo")
}
