// Package config handles configuration loading and validation
package config

import (
	"fmt"
	"net/url"
	"strings"
)

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "text": true}
	validProviders  = map[string]bool{"": true, "auto": true, "nebius": true, "openai": true}
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	if err := c.GitHub.Validate(); err != nil {
		return fmt.Errorf("github config: %w", err)
	}

	if err := c.BuildBudget().Validate(); err != nil {
		return fmt.Errorf("budget config: %w", err)
	}

	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm config: %w", err)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server config: addr is required")
	}

	if c.Cache.Enabled && c.Cache.Size <= 0 {
		return fmt.Errorf("cache config: size must be positive when enabled, got %d", c.Cache.Size)
	}

	if err := c.Global.Validate(); err != nil {
		return fmt.Errorf("global config: %w", err)
	}

	return nil
}

// Validate validates GitHub settings
func (g GitHubConfig) Validate() error {
	u, err := url.Parse(g.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url must be an http(s) URL, got %q", g.APIURL)
	}
	if g.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// Validate validates LLM settings
func (l LLMConfig) Validate() error {
	if !validProviders[strings.ToLower(l.Provider)] {
		return fmt.Errorf("provider must be one of auto, nebius, openai, got %q", l.Provider)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", l.MaxTokens)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", l.Temperature)
	}
	return nil
}

// Validate validates global settings
func (g GlobalConfig) Validate() error {
	if !validLogLevels[strings.ToLower(g.LogLevel)] {
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", g.LogLevel)
	}
	if !validLogFormats[strings.ToLower(g.LogFormat)] {
		return fmt.Errorf("log_format must be json or text, got %q", g.LogFormat)
	}
	return nil
}
