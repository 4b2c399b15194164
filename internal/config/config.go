package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for lvmgod.
type Config struct {
	// TimeoutSeconds bounds each external command invocation.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
	// Color is "auto", "always" or "never".
	Color      string      `yaml:"color,omitempty"`
	BackupDirs []BackupDir `yaml:"backup_dirs,omitempty"`
	Exports    Exports     `yaml:"exports,omitempty"`
	History    History     `yaml:"history,omitempty"`
}

// BackupDir points at one LVM metadata directory to inspect.
type BackupDir struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Exports sets the default output paths for the check command.
type Exports struct {
	JSONPath string `yaml:"json_path,omitempty"`
	PromPath string `yaml:"prom_path,omitempty"`
}

// History configures the local check-history database.
type History struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Path     string `yaml:"path,omitempty"`
}

// defaultConfig provides baseline settings; backup directories default to
// the well-known LVM paths when left empty.
var defaultConfig = Config{
	TimeoutSeconds: 30,
	Color:          "auto",
	Exports: Exports{
		JSONPath: "lvm_state.json",
		PromPath: "lvm_metrics.prom",
	},
}

// Load reads the config file. With an empty path the default locations are
// tried; a missing or unreadable file falls back to built-in defaults, while
// a file that exists but fails to parse is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		candidates := []string{
			"/etc/lvmgod/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/lvmgod/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	var cfg Config
	if path == "" {
		cfg = defaultConfig
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			cfg = defaultConfig
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultConfig.TimeoutSeconds
	}
	if cfg.Color == "" {
		cfg.Color = defaultConfig.Color
	}
	if cfg.Exports.JSONPath == "" {
		cfg.Exports.JSONPath = defaultConfig.Exports.JSONPath
	}
	if cfg.Exports.PromPath == "" {
		cfg.Exports.PromPath = defaultConfig.Exports.PromPath
	}

	return &cfg, nil
}

// CommandTimeout returns the per-command timeout as a duration.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ColorEnabled resolves the configured color mode against the terminal
// state detected by the caller.
func (c *Config) ColorEnabled(tty bool) bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return tty
	}
}
