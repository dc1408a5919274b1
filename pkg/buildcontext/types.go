// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package buildcontext turns a repository listing into a bounded-size text
// document for language model analysis.
//
// The pipeline is:
//
//	raw tree -> Filter -> Rank -> Selector -> Fetcher -> Assemble
//
// with RenderTree running over the filtered paths to produce the first section.
// Every stage except the Fetcher is pure and synchronous.
package buildcontext

import (
	"fmt"
)

// NodeKind distinguishes files from directories in a tree listing.
type NodeKind string

const (
	// NodeBlob is a file.
	NodeBlob NodeKind = "blob"
	// NodeTree is a directory.
	NodeTree NodeKind = "tree"
)

// TreeNode is one entry of a recursive repository listing.
// Path is "/"-separated and relative to the repository root.
type TreeNode struct {
	Path string
	Kind NodeKind
	Size int64
}

// ClassifiedFile is an accepted file with its priority tier (1 is highest).
type ClassifiedFile struct {
	Path string
	Size int64
	Tier int
}

// Default budget values.
const (
	DefaultCtxBudget      = 100_000
	DefaultFileCap        = 15_000
	DefaultMaxFetch       = 40
	DefaultBigFileCeiling = 100_000
	DefaultConcurrency    = 3
	DefaultTreeLineCap    = 200
)

// Budget is the fixed set of limits for a single run. It is passed by value.
type Budget struct {
	// CtxBudget bounds the total assembled character count.
	CtxBudget int
	// FileCap bounds a single file body before truncation.
	FileCap int
	// MaxFetch bounds how many file bodies are fetched.
	MaxFetch int
	// BigFileCeiling is the largest raw size a file may have to be eligible.
	BigFileCeiling int64
	// Concurrency is the fan-out limit for body fetching.
	Concurrency int
	// TreeLineCap bounds the rendered directory tree.
	TreeLineCap int
}

// DefaultBudget returns the stock limits.
func DefaultBudget() Budget {
	return Budget{
		CtxBudget:      DefaultCtxBudget,
		FileCap:        DefaultFileCap,
		MaxFetch:       DefaultMaxFetch,
		BigFileCeiling: DefaultBigFileCeiling,
		Concurrency:    DefaultConcurrency,
		TreeLineCap:    DefaultTreeLineCap,
	}
}

// Validate reports the first non-positive limit.
func (b Budget) Validate() error {
	checks := []struct {
		name  string
		value int64
	}{
		{"ctx_budget", int64(b.CtxBudget)},
		{"file_cap", int64(b.FileCap)},
		{"max_fetch", int64(b.MaxFetch)},
		{"big_file_ceiling", b.BigFileCeiling},
		{"concurrency", int64(b.Concurrency)},
		{"tree_line_cap", int64(b.TreeLineCap)},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", c.name, c.value)
		}
	}
	return nil
}
