// Package config handles configuration loading and validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
)

// ConfigEnv names the variable that points at an explicit config file
const ConfigEnv = "REPO_SUMMARIZER_CONFIG"

// Default config file names to search for
var defaultConfigFiles = []string{
	".repo-summarizer.yaml",
	".repo-summarizer.yml",
	".repo-summarizer.toml",
}

// Load loads configuration from a specific file path. Keys missing from the
// file keep their defaults. The format follows the extension: .toml is TOML,
// anything else YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config file: %s", path), err)
	}

	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("failed to parse config file: %s", path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("config validation failed", err).WithContext("path", path)
	}

	return cfg, nil
}

// LoadDefault searches for and loads configuration from default locations
// Search order:
// 1. Current directory
// 2. Parent directories (up to root)
// No file found yields the defaults.
func LoadDefault() (*Config, error) {
	path, err := findInParents(".")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// LoadFromEnv loads config from $REPO_SUMMARIZER_CONFIG (or the default
// locations) and applies environment overrides.
func LoadFromEnv() (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path := os.Getenv(ConfigEnv); path != "" {
		cfg, err = Load(path)
	} else {
		cfg, err = LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("config validation failed", err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if val := os.Getenv("GITHUB_TOKEN"); val != "" {
		cfg.GitHub.Token = val
	}
	if val := os.Getenv("NEBIUS_API_KEY"); val != "" {
		cfg.LLM.NebiusAPIKey = val
	}
	if val := os.Getenv("NEBIUS_MODEL"); val != "" {
		cfg.LLM.NebiusModel = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		cfg.LLM.OpenAIAPIKey = val
	}
	if val := os.Getenv("REPO_SUMMARIZER_ADDR"); val != "" {
		cfg.Server.Addr = val
	}
	if val := os.Getenv("REPO_SUMMARIZER_LOG_LEVEL"); val != "" {
		cfg.Global.LogLevel = val
	}
}

// findInParents returns the first config file in startDir or one of its
// parents, or "" when there is none.
func findInParents(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.ConfigError("failed to resolve working directory", err)
	}

	for {
		for _, filename := range defaultConfigFiles {
			configPath := filepath.Join(dir, filename)
			if _, err := os.Stat(configPath); err == nil {
				return configPath, nil
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root
			return "", nil
		}
		dir = parentDir
	}
}
