// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"time"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/buildcontext"
)

// DefaultConfig returns the default configuration.
// These values are used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL:  "https://api.github.com",
			Timeout: 30 * time.Second,
		},
		Budget: DefaultBudgetConfig(),
		LLM: LLMConfig{
			Provider:    "auto",
			Temperature: 0,
			MaxTokens:   2000,
			Timeout:     120 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    5 * time.Minute, // LLM calls are slow
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    128,
			TTL:     10 * time.Minute,
		},
		Global: GlobalConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}

// DefaultBudgetConfig returns the stock pipeline limits.
func DefaultBudgetConfig() BudgetConfig {
	b := buildcontext.DefaultBudget()
	return BudgetConfig{
		CtxBudget:      b.CtxBudget,
		FileCap:        b.FileCap,
		MaxFetch:       b.MaxFetch,
		BigFileCeiling: b.BigFileCeiling,
		Concurrency:    b.Concurrency,
		TreeLineCap:    b.TreeLineCap,
	}
}
