// Package config resolves the process configuration once at startup: the
// plan settings shared by both algorithms and the inventory backend choice.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/piwi3910/pipecut/internal/model"
)

// Backend names accepted by the "backend" key.
const (
	BackendLocal    = "local"
	BackendPostgres = "postgres"
)

// Config is the resolved process configuration.
type Config struct {
	Settings      model.PlanSettings
	Backend       string // BackendLocal or BackendPostgres
	DatabaseURL   string // Required for BackendPostgres
	InventoryPath string // Inventory file for BackendLocal
}

// DefaultConfigDir returns the directory holding the config and local
// inventory files, ~/.pipecut.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".pipecut")
}

// Load reads configuration from ~/.pipecut/config.yaml (optional) and
// PIPECUT_* environment variables, with the standard shop defaults
// underneath. The backend is validated here so the rest of the program can
// treat the choice as settled.
func Load() (Config, error) {
	v := viper.New()

	defaults := model.DefaultSettings()
	v.SetDefault("raw_length", defaults.RawLength)
	v.SetDefault("kerf", defaults.Kerf)
	v.SetDefault("save_threshold", defaults.SaveThreshold)
	v.SetDefault("usable_threshold", defaults.UsableThreshold)
	v.SetDefault("last_pipe_scrap_max", defaults.LastPipeScrapMax)
	v.SetDefault("backend", BackendLocal)
	v.SetDefault("database_url", "")
	v.SetDefault("inventory_path", filepath.Join(DefaultConfigDir(), "inventory.json"))

	v.SetEnvPrefix("PIPECUT")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultConfigDir())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Settings: model.PlanSettings{
			RawLength:        v.GetFloat64("raw_length"),
			Kerf:             v.GetFloat64("kerf"),
			SaveThreshold:    v.GetFloat64("save_threshold"),
			UsableThreshold:  v.GetFloat64("usable_threshold"),
			LastPipeScrapMax: v.GetFloat64("last_pipe_scrap_max"),
		},
		Backend:       v.GetString("backend"),
		DatabaseURL:   v.GetString("database_url"),
		InventoryPath: v.GetString("inventory_path"),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendLocal:
		if c.InventoryPath == "" {
			return fmt.Errorf("backend %q requires inventory_path", c.Backend)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("backend %q requires database_url", c.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendLocal, BackendPostgres)
	}
	if c.Settings.RawLength <= 0 {
		return fmt.Errorf("raw_length must be positive, got %.2f", c.Settings.RawLength)
	}
	if c.Settings.Kerf < 0 {
		return fmt.Errorf("kerf must not be negative, got %.2f", c.Settings.Kerf)
	}
	return nil
}
