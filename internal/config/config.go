package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Path or name of the pactl binary
	PactlPath string `yaml:"pactl_path"`
	// 0 lets commands run until they exit
	CommandTimeout     time.Duration `yaml:"command_timeout"`
	ShowSystemModules  bool          `yaml:"show_system_modules"`
	ShowMonitorSources bool          `yaml:"show_monitor_sources"`
	// SQLite file holding user presets and mutation history
	Database string `yaml:"database"`
	// One of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// Path the config was read from, empty when defaults were used
	Source string `yaml:"-"`
}

// DefaultDatabasePath returns $HOME/.local/share/pactlgod/pactlgod.db
func DefaultDatabasePath() string {
	return filepath.Join(os.Getenv("HOME"), ".local/share/pactlgod/pactlgod.db")
}

// Default returns the settings used when no config file exists
func Default() *Config {
	return &Config{
		PactlPath: "pactl",
		Database:  DefaultDatabasePath(),
		LogLevel:  "info",
	}
}

// Candidates returns the locations searched when no path is given
func Candidates() []string {
	return []string{
		"/etc/pactlgod/config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/pactlgod/config.yaml"),
		"config.yaml",
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		// Try default locations
		for _, c := range Candidates() {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := Default()
	if path == "" {
		// No config file found - use defaults
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Source = path

	// Apply defaults for fields cleared by the file
	def := Default()
	if cfg.PactlPath == "" {
		cfg.PactlPath = def.PactlPath
	}
	if cfg.Database == "" {
		cfg.Database = def.Database
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.CommandTimeout < 0 {
		return nil, fmt.Errorf("command_timeout must not be negative")
	}

	return cfg, nil
}
