// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/server"
)

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <github-url>",
		Short: "Summarize a repository and print the JSON result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			svc, err := newService(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			summary, err := svc.Summarize(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(server.SummarizeResponse{
				Summary:      summary.Summary,
				Technologies: summary.Technologies,
				Structure:    summary.Structure,
			})
		},
	}
}
