// Package config loads and validates taskveil's YAML configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WatchConfig configures the resident watch mode.
type WatchConfig struct {
	// Hotkey toggles taskbar visibility of the active window, e.g. "ctrl+shift+h".
	Hotkey string `yaml:"hotkey"`
	// Notify sends a desktop notification when a window is hidden or restored.
	Notify bool `yaml:"notify"`
	// Tray shows a system tray menu for restoring hidden windows.
	Tray bool `yaml:"tray"`
}

// LoggingConfig configures the action log.
type LoggingConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// Config is the top-level taskveil configuration.
type Config struct {
	// Strategy selects the hiding mechanism: auto, owner-window or taskbar-list.
	Strategy string `yaml:"strategy"`
	// OwnerTitle is the placeholder title given to hidden owner windows.
	OwnerTitle string `yaml:"owner_title"`

	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Strategy:   "auto",
		OwnerTitle: "",
		Watch: WatchConfig{
			Hotkey: "ctrl+shift+h",
			Notify: true,
			Tray:   true,
		},
		Logging: LoggingConfig{
			Enabled:   false,
			Level:     "info",
			File:      defaultLogPath(),
			MaxSizeMB: 5,
			MaxFiles:  3,
		},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "taskveil", "config.yaml"), nil
}

func defaultLogPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "taskveil-actions.log"
	}
	return filepath.Join(homeDir, ".local", "state", "taskveil", "actions.log")
}

// Load reads the configuration from the standard location. A missing file is
// not an error; the defaults are returned.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromFile(path)
}

// LoadFromFile reads the configuration from an explicit path, layering the
// file's values over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the default configuration and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values; it does not touch the filesystem.
func (c *Config) Validate() error {
	switch c.Strategy {
	case "auto", "owner-window", "taskbar-list":
	default:
		return fmt.Errorf("invalid strategy %q (want auto, owner-window or taskbar-list)", c.Strategy)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}

	if c.Logging.Enabled {
		if c.Logging.File == "" {
			return fmt.Errorf("logging enabled but no log file configured")
		}
		if c.Logging.MaxSizeMB <= 0 {
			return fmt.Errorf("logging max_size_mb must be positive, got %d", c.Logging.MaxSizeMB)
		}
		if c.Logging.MaxFiles < 0 {
			return fmt.Errorf("logging max_files must not be negative, got %d", c.Logging.MaxFiles)
		}
	}

	if c.Watch.Hotkey == "" {
		return fmt.Errorf("watch hotkey must not be empty")
	}
	return nil
}

// Print writes the effective configuration as YAML.
func (c *Config) Print(w io.Writer) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = w.Write(out)
	return err
}
