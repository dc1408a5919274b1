// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/server"
)

type serveFlags struct {
	addr string
}

func newServeCmd() *cobra.Command {
	var opts serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

POST /summarize accepts {"github_url": "..."} and returns the summary,
technologies and structure of the repository. GET /healthz and
GET /metrics report liveness and counters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if opts.addr != "" {
				cfg.Server.Addr = opts.addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := newLogger(cfg, cmd.ErrOrStderr())
			svc, err := newService(ctx, cfg, logger)
			if err != nil {
				return err
			}

			srv := server.New(svc, svc.Metrics(), cfg.Server, logger)
			if err := srv.Start(ctx); err != nil {
				return err
			}
			logger.Info("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
