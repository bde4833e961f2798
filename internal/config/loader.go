package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Path returns the config file location, ~/.config/qrpop/config.yaml.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "qrpop", "config.yaml")
}

// Load loads configuration from ~/.config/qrpop/config.yaml. A missing or
// unreadable file yields the defaults.
func Load() Config {
	cfg := DefaultConfig()

	path := Path()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg
	}
	return merge(cfg, fileCfg)
}

func merge(base, over Config) Config {
	if over.Theme != "" {
		base.Theme = over.Theme
	}
	if over.Level != "" {
		base.Level = over.Level
	}
	if over.Size > 0 {
		base.Size = over.Size
	}
	if over.Foreground != "" {
		base.Foreground = over.Foreground
	}
	if over.Background != "" {
		base.Background = over.Background
	}
	if over.DownloadDir != "" {
		base.DownloadDir = over.DownloadDir
	}
	if over.Storage != "" {
		base.Storage = over.Storage
	}
	if over.DataDir != "" {
		base.DataDir = over.DataDir
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	return base
}
