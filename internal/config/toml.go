// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Server ServerConfig `toml:"server"`
	Editor EditorConfig `toml:"editor"`
}

// ServerConfig maps connection settings of the course-management server.
type ServerConfig struct {
	URL     *string `toml:"url"`
	Token   *string `toml:"token"`
	Timeout *string `toml:"timeout"`
	Retries *int    `toml:"retries"`
}

// EditorConfig maps defaults of the lecture editor.
type EditorConfig struct {
	Wizard       *bool `toml:"wizard"`
	ProcessUnits *bool `toml:"process-units"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
