// ABOUTME: Client configuration from file, .env, and environment
// ABOUTME: Handles the API base URL, init payload, timezone, and debug toggle
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

const (
	// AppName is the application name used for XDG paths.
	AppName = "roomly"

	// DefaultTimezone is the application's single fixed timezone.
	DefaultTimezone = "Asia/Almaty"

	configFileName = "config.json"
)

// Config holds client settings. File values load first, then environment
// variables override:
// - ROOMLY_API_URL
// - ROOMLY_INIT_DATA
// - ROOMLY_TIMEZONE
// - ROOMLY_DEBUG ("1" enables the diagnostic overlay at startup).
type Config struct {
	APIURL   string `json:"api_url"`
	InitData string `json:"init_data,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Debug    bool   `json:"debug,omitempty"`
}

// Path returns the config file location under the XDG data home.
func Path() string {
	return filepath.Join(xdg.DataHome, AppName, configFileName)
}

// Load reads the config file if present, applies a .env file from the
// working directory, and finally environment overrides. A missing or
// unparsable file falls back to defaults rather than failing startup.
func Load() *Config {
	cfg := &Config{Timezone: DefaultTimezone}

	if raw, err := os.ReadFile(Path()); err == nil {
		if err := json.Unmarshal(raw, cfg); err != nil {
			cfg = &Config{Timezone: DefaultTimezone}
		}
	}

	// Missing .env is the normal case.
	_ = godotenv.Load()
	applyEnvOverrides(cfg)

	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	return cfg
}

// Save writes the config for the next run.
func Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(Path()), 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), raw, 0o600)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROOMLY_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("ROOMLY_INIT_DATA"); v != "" {
		cfg.InitData = v
	}
	if v := os.Getenv("ROOMLY_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("ROOMLY_DEBUG"); v == "1" {
		cfg.Debug = true
	}
}
