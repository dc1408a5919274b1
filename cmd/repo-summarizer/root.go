// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/ai"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/cache"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/config"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/observability"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/platform"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/summarizer"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/version"
)

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	config   string
	logLevel string
}

var globalOpts globalFlags

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo-summarizer",
		Short: "Summarize GitHub repositories with an LLM",
		Long: `repo-summarizer - Summarize a public GitHub repository.

The repository tree is filtered and ranked, the most informative files
are packed into a bounded context, and a language model describes what
the project does, which technologies it uses and how it is laid out.`,
		Version:       version.FullString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&globalOpts.config, "config", "c", "", "Path to configuration file (default: $"+config.ConfigEnv+" or .repo-summarizer.yaml)")
	cmd.PersistentFlags().StringVar(&globalOpts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newServeCmd(), newContextCmd(), newSummarizeCmd(), newVersionCmd())
	return cmd
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

// loadConfig reads the config named by --config, or the default locations,
// then applies environment and flag overrides.
func loadConfig() (*config.Config, error) {
	if globalOpts.config == "" {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return nil, err
		}
		applyFlags(cfg)
		return cfg, nil
	}

	cfg, err := config.Load(globalOpts.config)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg)
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("config validation failed", err)
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config) {
	if globalOpts.logLevel != "" {
		cfg.Global.LogLevel = globalOpts.logLevel
	}
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return observability.NewLogger(cfg.Global.LogLevel, cfg.Global.LogFormat, w)
}

// newGitHubClient creates the GitHub client, discovering a token when none
// is configured.
func newGitHubClient(ctx context.Context, cfg *config.Config) (*platform.GitHubClient, error) {
	token := cfg.GitHub.Token
	if token == "" {
		token = platform.DiscoverToken(ctx)
	}

	client := platform.NewGitHubClient(token)
	if cfg.GitHub.APIURL != "" {
		if err := client.SetBaseURL(cfg.GitHub.APIURL); err != nil {
			return nil, err
		}
	}
	if cfg.GitHub.Timeout > 0 {
		client.SetHTTPClient(&http.Client{Timeout: cfg.GitHub.Timeout})
	}
	return client, nil
}

// newService wires the summarizer service. When no model provider is
// configured the service still builds contexts; Summarize then fails with
// ai.ErrNoProvider.
func newService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*summarizer.Service, error) {
	gh, err := newGitHubClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []summarizer.Option{
		summarizer.WithExcludePatterns(cfg.Budget.Exclude),
		summarizer.WithLogger(logger),
		summarizer.WithMetrics(observability.NewMetrics()),
	}

	brain, err := ai.NewFromConfig(cfg.LLM)
	switch {
	case err == nil:
		logger.Info("Using language model", "provider", brain.Provider(), "model", brain.Model())
		opts = append(opts, summarizer.WithSummarizer(ai.NewSummarizer(brain, logger)))
	case err == ai.ErrNoProvider:
		logger.Warn("No LLM provider configured; summarize requests will fail", "hint", err.Error())
	default:
		return nil, err
	}

	if cfg.Cache.Enabled {
		opts = append(opts, summarizer.WithCache(cache.NewMemoryCache[*summarizer.ContextResult](cfg.Cache.Size, cfg.Cache.TTL)))
	}

	return summarizer.NewService(gh, cfg.BuildBudget(), opts...), nil
}
