// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for repo-summarizer.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Config file: $REPO_SUMMARIZER_CONFIG, or the first
//    .repo-summarizer.{yaml,yml,toml} found in the working directory or a parent
// 3. Environment Variables: GITHUB_TOKEN, NEBIUS_API_KEY, NEBIUS_MODEL,
//    OPENAI_API_KEY, REPO_SUMMARIZER_ADDR, REPO_SUMMARIZER_LOG_LEVEL
package config

import (
	"time"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/buildcontext"
)

// Config represents the complete application configuration.
type Config struct {
	GitHub GitHubConfig `yaml:"github" toml:"github"`
	Budget BudgetConfig `yaml:"budget" toml:"budget"`
	LLM    LLMConfig    `yaml:"llm" toml:"llm"`
	Server ServerConfig `yaml:"server" toml:"server"`
	Cache  CacheConfig  `yaml:"cache" toml:"cache"`
	Global GlobalConfig `yaml:"global" toml:"global"`
}

// GitHubConfig contains GitHub API settings.
type GitHubConfig struct {
	APIURL  string        `yaml:"api_url" toml:"api_url"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
	// Token is never read from files; it comes from GITHUB_TOKEN or the gh CLI
	Token string `yaml:"-" toml:"-"`
}

// BudgetConfig contains the context packing limits.
type BudgetConfig struct {
	CtxBudget      int      `yaml:"ctx_budget" toml:"ctx_budget"`
	FileCap        int      `yaml:"file_cap" toml:"file_cap"`
	MaxFetch       int      `yaml:"max_fetch" toml:"max_fetch"`
	BigFileCeiling int64    `yaml:"big_file_ceiling" toml:"big_file_ceiling"`
	Concurrency    int      `yaml:"concurrency" toml:"concurrency"`
	TreeLineCap    int      `yaml:"tree_line_cap" toml:"tree_line_cap"`
	Exclude        []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"` // gitignore-style patterns
}

// LLMConfig contains language model settings.
type LLMConfig struct {
	Provider    string        `yaml:"provider" toml:"provider"` // auto, nebius, openai
	Model       string        `yaml:"model,omitempty" toml:"model,omitempty"`
	BaseURL     string        `yaml:"base_url,omitempty" toml:"base_url,omitempty"`
	Temperature float64       `yaml:"temperature" toml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens" toml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout" toml:"timeout"`

	NebiusModel  string `yaml:"-" toml:"-"`
	NebiusAPIKey string `yaml:"-" toml:"-"`
	OpenAIAPIKey string `yaml:"-" toml:"-"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" toml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// CacheConfig contains the assembled-context cache settings.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" toml:"enabled"`
	Size    int           `yaml:"size" toml:"size"` // entries
	TTL     time.Duration `yaml:"ttl" toml:"ttl"`
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel  string `yaml:"log_level" toml:"log_level"`   // debug, info, warn, error
	LogFormat string `yaml:"log_format" toml:"log_format"` // json, text
}

// BuildBudget converts the budget section into pipeline limits.
func (c *Config) BuildBudget() buildcontext.Budget {
	return buildcontext.Budget{
		CtxBudget:      c.Budget.CtxBudget,
		FileCap:        c.Budget.FileCap,
		MaxFetch:       c.Budget.MaxFetch,
		BigFileCeiling: c.Budget.BigFileCeiling,
		Concurrency:    c.Budget.Concurrency,
		TreeLineCap:    c.Budget.TreeLineCap,
	}
}
