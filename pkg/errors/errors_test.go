// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := PlatformError("tree fetch failed", errors.New("boom"))
	if got := err.Error(); got != "[PLATFORM] tree fetch failed: boom" {
		t.Errorf("Error() = %q", got)
	}

	err = EmptyError("repo is empty")
	if got := err.Error(); got != "[EMPTY] repo is empty" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsTypeThroughWrapping(t *testing.T) {
	base := RateLimitError("GitHub rate limit hit during tree fetch.", nil)
	wrapped := fmt.Errorf("fetch: %w", base)

	if !IsType(wrapped, ErrRateLimit) {
		t.Error("wrapped rate limit error should match ErrRateLimit")
	}
	if IsType(wrapped, ErrPlatform) {
		t.Error("rate limit error should not match ErrPlatform")
	}
	if IsType(nil, ErrRateLimit) {
		t.Error("nil error should not match any type")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{PlatformError("502", nil), true},
		{TimeoutError("slow", nil), true},
		{RateLimitError("limited", nil), false},
		{NotFoundError("missing", nil), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ValidationError("bad url", nil), http.StatusBadRequest},
		{EmptyError("empty"), http.StatusBadRequest},
		{RateLimitError("limited", nil), http.StatusForbidden},
		{PermissionError("denied", nil), http.StatusForbidden},
		{NotFoundError("missing", nil), http.StatusNotFound},
		{PlatformError("upstream", nil), http.StatusBadGateway},
		{LLMError("llm", nil), http.StatusBadGateway},
		{ConfigError("no key", nil), http.StatusInternalServerError},
		{InternalError("panic", nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NotFoundError("Repo 'a/b' not found or is private.", nil))
	if got := Message(err); got != "Repo 'a/b' not found or is private." {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(errors.New("plain")); got != "plain" {
		t.Errorf("Message() = %q", got)
	}
}

func TestWithContext(t *testing.T) {
	err := PlatformError("x", nil).WithContext("status", 500)
	if err.Context["status"] != 500 {
		t.Errorf("Context[status] = %v", err.Context["status"])
	}
}
