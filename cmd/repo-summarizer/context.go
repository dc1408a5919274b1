// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/summarizer"
)

type contextFlags struct {
	stats bool
}

func newContextCmd() *cobra.Command {
	var opts contextFlags

	cmd := &cobra.Command{
		Use:   "context <github-url>",
		Short: "Print the LLM context built for a repository",
		Long: `Build the context document for a repository without calling a
language model. Useful for inspecting what the model would see.`,
		Args: cobra.ExactArgs(1),
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

			cr, err := svc.Context(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, cr.Result.Document.String())
			if opts.stats {
				printStats(cmd.ErrOrStderr(), cr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Print pipeline statistics to stderr")
	return cmd
}

func printStats(w io.Writer, cr *summarizer.ContextResult) {
	st := cr.Result.Stats
	doc := cr.Result.Document
	fmt.Fprintf(w, "repo: %s (branch %s)\n", cr.Repo, cr.Info.DefaultBranch)
	fmt.Fprintf(w, "  listed:   %d\n", st.Listed)
	fmt.Fprintf(w, "  eligible: %d\n", st.Eligible)
	fmt.Fprintf(w, "  selected: %d\n", st.Selected)
	fmt.Fprintf(w, "  included: %d\n", st.Included)
	fmt.Fprintf(w, "  chars:    %d/%d\n", doc.Used, doc.Budget)
	fmt.Fprintf(w, "  truncated: %t, exhausted: %t, cached: %t\n", doc.Truncated, doc.Exhausted, cr.Cached)
	if cr.Injection != nil && cr.Injection.Suspicious {
		fmt.Fprintf(w, "  flagged:  score %d in %v\n", cr.Injection.Score, cr.Injection.Paths())
	}
}
