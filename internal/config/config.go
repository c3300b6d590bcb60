// Package config provides configuration file parsing for playtime.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir returns the playtime config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/playtime if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "playtime"), nil
}

// Config holds the settings of the playtime CLI and data layer.
type Config struct {
	// DataDir is where per-account databases live. Defaults to
	// ~/.local/share/playtime.
	DataDir string `yaml:"data_dir"`

	// DefaultUser is the account selected when --user is not given.
	DefaultUser string `yaml:"default_user"`

	// CacheSize bounds how many account store handles stay open.
	CacheSize int `yaml:"cache_size"`

	// LogFile enables boundary logging when set.
	LogFile string `yaml:"log_file"`
}

// defaultDataDir resolves the default per-account data directory.
func defaultDataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "data"
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "playtime")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DataDir:   defaultDataDir(),
		CacheSize: 8,
	}
}

// Load reads {dir}/config.yaml and returns the parsed config merged over
// the defaults. A missing file returns the defaults without an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 8
	}
	return cfg, nil
}
