// Package config holds the persistent application configuration.
//
// Configuration lives in ~/.emolens/config.json. A missing or corrupt
// file yields defaults rather than an error, and environment variables
// override the service endpoint and plan so deployments can point the
// dashboard without editing files.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration.
type Config struct {
	// API describes the inference service connection.
	API APIConfig `json:"api"`

	// UI preferences.
	UI UIConfig `json:"ui"`

	// Playback settings.
	Playback PlaybackConfig `json:"playback"`
}

// APIConfig holds inference service settings.
type APIConfig struct {
	BaseURL        string `json:"base_url"`
	Plan           string `json:"plan"` // basic | plus | pro
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// UIConfig holds UI preferences.
type UIConfig struct {
	Theme       string `json:"theme"`
	DensityMode string `json:"density_mode"` // "comfortable" or "compact"
}

// PlaybackConfig holds playback synchronization settings.
type PlaybackConfig struct {
	PollIntervalMs int `json:"poll_interval_ms"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			Plan:           "basic",
			TimeoutSeconds: 60,
		},
		UI: UIConfig{
			Theme:       "dark",
			DensityMode: "comfortable",
		},
		Playback: PlaybackConfig{
			PollIntervalMs: 250,
		},
	}
}

// Dir returns the application data directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".emolens")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// HistoryPath returns the path of the history archive database.
func HistoryPath() string {
	return filepath.Join(Dir(), "history.db")
}

// Load reads config from disk, or returns defaults. A corrupt file is
// treated the same as a missing one.
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.ApplyEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.fillDefaults()
	cfg.ApplyEnv()
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("EMOLENS_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("EMOLENS_PLAN"); v != "" {
		c.API.Plan = v
	}
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.Plan == "" {
		c.API.Plan = def.API.Plan
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if c.Playback.PollIntervalMs <= 0 {
		c.Playback.PollIntervalMs = def.Playback.PollIntervalMs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.DensityMode == "" {
		c.UI.DensityMode = def.UI.DensityMode
	}
}
