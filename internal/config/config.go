package config

import (
	"os"
	"path/filepath"
)

// Config holds the application configuration.
type Config struct {
	Theme       string `yaml:"theme"`
	Level       string `yaml:"level"`
	Size        int    `yaml:"size"`
	Foreground  string `yaml:"foreground"`
	Background  string `yaml:"background"`
	DownloadDir string `yaml:"download_dir"`
	Storage     string `yaml:"storage"`
	DataDir     string `yaml:"data_dir"`
	LogLevel    string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:      "catppuccin-mocha",
		Level:      "M",
		Size:       256,
		Foreground: "#000000",
		Background: "#ffffff",
		Storage:    "sqlite",
		LogLevel:   "info",
	}
}

// ResolvedDataDir returns DataDir, or ~/.local/share/qrpop when unset.
func (c Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "qrpop")
	}
	return filepath.Join(home, ".local", "share", "qrpop")
}
