package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-level defaults loaded from the config file.
// All fields are optional; command-line flags take precedence.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds default render settings.
type RenderConfig struct {
	Width       int     `toml:"width"`
	Scale       float64 `toml:"scale"`
	Background  string  `toml:"background_color"`
	BorderWidth int     `toml:"border_width"`
	BorderColor string  `toml:"border_color"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Disabled bool `toml:"disabled"`
}

// ServerConfig holds serve command settings.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Redis string `toml:"redis"`
}

// defaultConfigPath returns the path of the user config file
// (~/.config/svgraster/config.toml).
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads the config file at path. An empty path falls back to the
// default location; a missing file yields a zero config without error.
func loadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
