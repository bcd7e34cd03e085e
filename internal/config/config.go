// Package config handles credential discovery and global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/slk/config.yml.
type GlobalConfig struct {
	Token               string `yaml:"token,omitempty"`
	DefaultSearchLimit  int    `yaml:"default_search_limit,omitempty"`
	DefaultHistoryLimit int    `yaml:"default_history_limit,omitempty"`
}

const (
	// TokenEnvVar is the environment variable holding the bearer token.
	TokenEnvVar = "SLACK_CLI_TOKEN"

	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "slk"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/slk/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	return &cfg, nil
}

// ResolveToken returns the bearer token from the environment, falling
// back to the global config file. The environment always wins so a
// script can override a configured default.
func ResolveToken() (string, error) {
	if token := os.Getenv(TokenEnvVar); token != "" {
		return token, nil
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.Token != "" {
		return cfg.Token, nil
	}

	return "", fmt.Errorf("slack token not found; set %s or add token to %s", TokenEnvVar, GlobalConfigPath())
}
