// Package config provides configuration loading for minline using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// History settings
type History struct {
	MaxLen  int    `toml:"maxLen"`
	Persist bool   `toml:"persist"`
	File    string `toml:"file"` // history database path (empty = default)
}

// Editor settings
type Editor struct {
	MaskMode              bool `toml:"maskMode"`
	AllowPrefixCompletion bool `toml:"allowPrefixCompletion"`
}

// Config is the main configuration struct
type Config struct {
	History History `toml:"history"`
	Editor  Editor  `toml:"editor"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		History: History{
			MaxLen:  100,
			Persist: false,
			File:    "",
		},
		Editor: Editor{
			MaskMode:              false,
			AllowPrefixCompletion: true,
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "minline"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the default history database path.
func HistoryPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	cfg := Default()

	configPath, err := ConfigPath()
	if err != nil {
		return cfg, nil // Return defaults if we can't determine path
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil // Return defaults if no user config
	}

	userCfg, md, err := loadFromTOML(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
	}

	return merge(cfg, userCfg, md), nil
}

// loadFromTOML loads a TOML config file, returning the config together
// with the decode metadata that records which keys the file actually
// set.
func loadFromTOML(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parsing config TOML: %w", err)
	}
	return &cfg, md, nil
}

// merge layers user config on top of defaults. A key overrides its
// default exactly when the user's file defined it, so explicit zero
// values (maxLen = 0, allowPrefixCompletion = false) take effect.
func merge(defaults, user *Config, md toml.MetaData) *Config {
	result := *defaults

	if md.IsDefined("history", "maxLen") {
		result.History.MaxLen = user.History.MaxLen
	}
	if md.IsDefined("history", "persist") {
		result.History.Persist = user.History.Persist
	}
	if md.IsDefined("history", "file") {
		result.History.File = user.History.File
	}

	if md.IsDefined("editor", "maskMode") {
		result.Editor.MaskMode = user.Editor.MaskMode
	}
	if md.IsDefined("editor", "allowPrefixCompletion") {
		result.Editor.AllowPrefixCompletion = user.Editor.AllowPrefixCompletion
	}

	return &result
}

// DefaultTOML returns the default configuration as a TOML string.
// Used to generate a user config file.
func DefaultTOML() string {
	return `# minline configuration
# Save to ~/.config/minline/config.toml and customize
# Only include settings you want to change from defaults

[history]
maxLen = 100          # Bound on in-memory history entries
persist = false       # Record submitted lines in the history database
file = ""             # History database path (empty = ~/.config/minline/history.db)

[editor]
maskMode = false              # Display '*' per typed byte (secret input)
allowPrefixCompletion = true  # Accept a common prefix that is itself a candidate
`
}
