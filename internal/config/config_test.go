package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("unexpected server url: %q", cfg.ServerURL)
	}
	if cfg.PageSize != 10 {
		t.Errorf("unexpected page size: %d", cfg.PageSize)
	}
	if cfg.Timeout().Seconds() != 120 {
		t.Errorf("unexpected timeout: %v", cfg.Timeout())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	resetViper(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("OBLIGO_SERVER_URL", "http://api.internal:9000")
	t.Setenv("OBLIGO_PAGE_SIZE", "25")
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerURL != "http://api.internal:9000" {
		t.Errorf("env override not applied: %q", cfg.ServerURL)
	}
	if cfg.PageSize != 25 {
		t.Errorf("env override not applied: %d", cfg.PageSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty server url", func(c *Config) { c.ServerURL = "" }, true},
		{"page size too small", func(c *Config) { c.PageSize = 0 }, true},
		{"page size too large", func(c *Config) { c.PageSize = 101 }, true},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir_XDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	if got := ConfigDir(); got != filepath.Join(tmp, "obligo") {
		t.Errorf("unexpected config dir: %q", got)
	}
}
