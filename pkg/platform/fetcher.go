// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"context"
	"io"
	"log/slog"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/buildcontext"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/perf"
)

// BodyFetcher downloads file bodies for the context pipeline with bounded
// concurrency.
//
// A path that fails for any reason other than a rate limit is left out of
// the result. A rate limit aborts the whole batch: in-flight and pending
// requests are cancelled, partial bodies are dropped, and the rate limit
// error is returned.
type BodyFetcher struct {
	platform    Platform
	repo        RepoRef
	ref         string
	concurrency int
	logger      *slog.Logger
}

var _ buildcontext.Fetcher = (*BodyFetcher)(nil)

// NewBodyFetcher creates a fetcher reading repo at ref.
func NewBodyFetcher(p Platform, repo RepoRef, ref string, concurrency int, logger *slog.Logger) *BodyFetcher {
	if concurrency <= 0 {
		concurrency = buildcontext.DefaultConcurrency
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BodyFetcher{
		platform:    p,
		repo:        repo,
		ref:         ref,
		concurrency: concurrency,
		logger:      logger,
	}
}

type fetchedBody struct {
	path string
	body string
	ok   bool
}

// FetchBodies implements buildcontext.Fetcher.
func (f *BodyFetcher) FetchBodies(ctx context.Context, paths []string) (map[string]string, error) {
	results, err := perf.Map(ctx, paths, func(ctx context.Context, path string) (fetchedBody, error) {
		body, err := f.platform.GetFileContent(ctx, f.repo, path, f.ref)
		if err != nil {
			if errors.IsType(err, errors.ErrRateLimit) {
				return fetchedBody{}, err
			}
			f.logger.Debug("Skipping file", "path", path, "error", err)
			return fetchedBody{path: path}, nil
		}
		return fetchedBody{path: path, body: body, ok: true}, nil
	}, f.concurrency)
	if err != nil {
		return nil, err
	}

	bodies := make(map[string]string, len(results))
	for _, r := range results {
		if r.ok {
			bodies[r.path] = r.body
		}
	}
	return bodies, nil
}
