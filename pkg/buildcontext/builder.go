// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package buildcontext

import (
	"context"
	"io"
	"log/slog"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
)

// ErrNothingToSummarize is returned when no file survives filtering.
var ErrNothingToSummarize = errors.EmptyError("Repo is empty or has no readable files.")

// Fetcher supplies file bodies for a set of paths. A path missing from the
// result means "no body". An error aborts the whole build.
type Fetcher interface {
	FetchBodies(ctx context.Context, paths []string) (map[string]string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, paths []string) (map[string]string, error)

// FetchBodies calls f.
func (f FetcherFunc) FetchBodies(ctx context.Context, paths []string) (map[string]string, error) {
	return f(ctx, paths)
}

// RepoSnapshot is the listing and metadata of one branch.
type RepoSnapshot struct {
	Tree        []TreeNode
	Description string
	Language    string
}

// Stats describes one build.
type Stats struct {
	Listed   int
	Eligible int
	Selected int
	Included int
}

// Result is a built document plus its stats.
type Result struct {
	Document *Document
	Stats    Stats
}

// Builder runs the selection pipeline with a fixed budget.
type Builder struct {
	budget   Budget
	selector Selector
	excluder *Excluder
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithSelector replaces the greedy selector.
func WithSelector(s Selector) Option {
	return func(b *Builder) { b.selector = s }
}

// WithExcludePatterns adds gitignore-style patterns to the junk rules.
func WithExcludePatterns(patterns []string) Option {
	return func(b *Builder) { b.excluder = NewExcluder(patterns) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a new context builder
func NewBuilder(budget Budget, opts ...Option) *Builder {
	b := &Builder{
		budget:   budget,
		selector: NewGreedySelector(budget),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Budget returns the builder's limits.
func (b *Builder) Budget() Budget {
	return b.budget
}

// Build filters, ranks and selects files from snap, fetches the chosen bodies
// once through fetcher, and assembles the document. It returns
// ErrNothingToSummarize without calling fetcher when nothing is eligible.
// Fetcher errors are returned unchanged.
func (b *Builder) Build(ctx context.Context, snap RepoSnapshot, fetcher Fetcher) (*Result, error) {
	accepted := Filter(snap.Tree, b.budget, b.excluder)
	if len(accepted) == 0 {
		return nil, ErrNothingToSummarize
	}
	ranked := Rank(accepted)

	paths := make([]string, len(accepted))
	for i, n := range accepted {
		paths[i] = n.Path
	}

	doc := NewDocument(b.budget.CtxBudget)
	doc.AddHeader(RenderTree(paths, b.budget.TreeLineCap), snap.Description, snap.Language)

	picked := b.selector.Select(ranked, doc.Remaining())
	b.logger.Info("Fetching files",
		"selected", len(picked),
		"eligible", len(ranked),
		"listed", len(snap.Tree))

	bodies := map[string]string{}
	if len(picked) > 0 {
		chosen := make([]string, len(picked))
		for i, f := range picked {
			chosen[i] = f.Path
		}
		var err error
		bodies, err = fetcher.FetchBodies(ctx, chosen)
		if err != nil {
			return nil, err
		}
	}

	doc.AddFiles(picked, bodies, b.budget.FileCap)
	stats := Stats{
		Listed:   len(snap.Tree),
		Eligible: len(ranked),
		Selected: len(picked),
		Included: len(doc.Files()),
	}
	b.logger.Info("Context ready",
		"chars", doc.Used,
		"file_sections", stats.Included,
		"truncated", doc.Truncated)

	return &Result{Document: doc, Stats: stats}, nil
}
