// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package server exposes the summarizer over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/ai"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/config"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/observability"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/version"
)

// maxBodyBytes caps the request body; a URL never needs more
const maxBodyBytes = 64 << 10

// Summarizer produces a summary for a repository URL.
type Summarizer interface {
	Summarize(ctx context.Context, githubURL string) (*ai.Summary, error)
}

// Server serves the summarize API.
type Server struct {
	svc        Summarizer
	metrics    *observability.Metrics
	cfg        config.ServerConfig
	logger     *slog.Logger
	httpServer *http.Server
}

// SummarizeRequest is the body of POST /summarize.
type SummarizeRequest struct {
	GitHubURL string `json:"github_url"`
}

// SummarizeResponse is the success body of POST /summarize.
type SummarizeResponse struct {
	Summary      string   `json:"summary"`
	Technologies []string `json:"technologies"`
	Structure    string   `json:"structure"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// New creates a new server. metrics may be nil.
func New(svc Summarizer, metrics *observability.Metrics, cfg config.ServerConfig, logger *slog.Logger) *Server {
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	if logger == nil {
		logger = observability.Discard()
	}
	return &Server{
		svc:     svc,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	return requestID(s.logRequests(s.recoverPanics(mux)))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info("Server listening", "address", s.cfg.Addr)

	select {
	case err := <-errChan:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		return s.Stop()
	}
}

// Stop shuts the server down, waiting up to the configured timeout for
// in-flight requests.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// handleSummarize handles POST /summarize.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, errors.ValidationError("Request body must be JSON with a github_url field.", err))
		return
	}

	summary, err := s.svc.Summarize(r.Context(), strings.TrimSpace(req.GitHubURL))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SummarizeResponse{
		Summary:      summary.Summary,
		Technologies: summary.Technologies,
		Structure:    summary.Structure,
	})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.String(),
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	msg := errorMessage(err)

	logger := loggerFrom(r.Context(), s.logger)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "status", status, "error", err)
	} else {
		logger.Info("Request rejected", "status", status, "message", msg)
	}

	s.writeJSON(w, status, ErrorResponse{Status: "error", Message: msg})
}

// errorMessage renders err for API clients.
func errorMessage(err error) string {
	if _, ok := errors.TypeOf(err); !ok {
		return "Internal error: " + err.Error()
	}

	msg := errors.Message(err)
	if errors.IsType(err, errors.ErrLLM) && !strings.HasPrefix(msg, "LLM error") {
		msg = "LLM error: " + msg
	}
	return msg
}
