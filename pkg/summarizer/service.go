// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package summarizer ties the GitHub client, the context pipeline and the
// language model together: a repository URL goes in, a summary comes out.
package summarizer

import (
	"context"
	"log/slog"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/ai"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/buildcontext"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/cache"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/observability"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/platform"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/security"
)

// ContextResult is an assembled repository context.
type ContextResult struct {
	Repo   platform.RepoRef
	Info   platform.RepoInfo
	Result *buildcontext.Result
	Cached bool

	// Injection lists file bodies that appear to address the model.
	Injection *security.Report
}

// Service summarizes GitHub repositories.
type Service struct {
	platform   platform.Platform
	budget     buildcontext.Budget
	exclude    []string
	builder    *buildcontext.Builder
	summarizer *ai.Summarizer
	detector   *security.Detector
	cache      cache.Cache[*ContextResult]
	keys       *cache.KeyGenerator
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSummarizer sets the model used by Summarize. Without one Summarize
// fails with ai.ErrNoProvider once the context is built.
func WithSummarizer(s *ai.Summarizer) Option {
	return func(svc *Service) { svc.summarizer = s }
}

// WithCache caches assembled contexts.
func WithCache(c cache.Cache[*ContextResult]) Option {
	return func(svc *Service) { svc.cache = c }
}

// WithExcludePatterns adds gitignore-style exclusions on top of the junk rules.
func WithExcludePatterns(patterns []string) Option {
	return func(svc *Service) { svc.exclude = patterns }
}

// WithDetector replaces the prompt injection detector.
func WithDetector(d *security.Detector) Option {
	return func(svc *Service) { svc.detector = d }
}

// WithMetrics records activity into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(svc *Service) { svc.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(svc *Service) { svc.logger = l }
}

// NewService creates a service reading repositories from p.
func NewService(p platform.Platform, budget buildcontext.Budget, opts ...Option) *Service {
	svc := &Service{
		platform: p,
		budget:   budget,
		keys:     cache.NewKeyGenerator(""),
		detector: security.NewDetector(),
		metrics:  observability.NewMetrics(),
		logger:   observability.Discard(),
	}
	for _, opt := range opts {
		opt(svc)
	}

	svc.builder = buildcontext.NewBuilder(budget,
		buildcontext.WithExcludePatterns(svc.exclude),
		buildcontext.WithLogger(svc.logger))
	return svc
}

// Metrics returns the service counters.
func (s *Service) Metrics() *observability.Metrics {
	return s.metrics
}

// Context builds the LLM input document for the repository at githubURL.
func (s *Service) Context(ctx context.Context, githubURL string) (*ContextResult, error) {
	repo, err := platform.ParseRepoURL(githubURL)
	if err != nil {
		return nil, err
	}

	key := s.keys.ForRepo(repo.String(), s.budget, s.exclude)
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key); err == nil {
			s.metrics.RecordCacheHit(true)
			s.logger.Info("Context cache hit", "repo", repo.String())
			out := *hit
			out.Cached = true
			return &out, nil
		}
		s.metrics.RecordCacheHit(false)
	}

	s.logger.Info("Processing repository", "repo", repo.String())

	snap, info, err := platform.Snapshot(ctx, s.platform, repo)
	if err != nil {
		return nil, err
	}

	fetcher := platform.NewBodyFetcher(s.platform, repo, info.DefaultBranch, s.budget.Concurrency, s.logger)
	res, err := s.builder.Build(ctx, snap, fetcher)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordContext(res.Stats.Included, res.Document.Used)

	report := s.detector.ScanDocument(res.Document)
	if report.Suspicious {
		s.metrics.RecordFlagged()
		s.logger.Warn("Repository content looks like a prompt injection",
			"repo", repo.String(),
			"score", report.Score,
			"files", report.Paths())
	}

	out := &ContextResult{Repo: repo, Info: *info, Result: res, Injection: report}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out); err != nil {
			s.logger.Warn("Failed to cache context", "repo", repo.String(), "error", err)
		}
	}
	return out, nil
}

// Summarize builds the repository context and asks the model to describe it.
func (s *Service) Summarize(ctx context.Context, githubURL string) (*ai.Summary, error) {
	s.metrics.RecordRun()

	summary, err := s.summarize(ctx, githubURL)
	if err != nil {
		s.metrics.RecordFailure()
		switch {
		case errors.IsType(err, errors.ErrEmpty):
			s.metrics.RecordEmpty()
		case errors.IsType(err, errors.ErrRateLimit):
			s.metrics.RecordRateLimited()
		}
		return nil, err
	}
	return summary, nil
}

func (s *Service) summarize(ctx context.Context, githubURL string) (*ai.Summary, error) {
	cr, err := s.Context(ctx, githubURL)
	if err != nil {
		return nil, err
	}

	if s.summarizer == nil {
		return nil, ai.ErrNoProvider
	}

	summary, err := s.summarizer.Summarize(ctx, cr.Result.Document.String())
	if err != nil {
		if !errors.IsType(err, errors.ErrLLM) && ctx.Err() == nil {
			err = errors.LLMError("LLM error: "+err.Error(), err)
		}
		return nil, err
	}

	s.metrics.RecordLLMCall(false)
	if summary.Repaired {
		s.metrics.RecordLLMCall(true)
	}
	return summary, nil
}
