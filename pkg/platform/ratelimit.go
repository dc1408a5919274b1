// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
)

// rateLimitError reports whether a response is GitHub refusing service for
// quota reasons. Primary limits answer 403 with X-RateLimit-Remaining: 0,
// secondary limits answer 403 or 429 with "rate limit" in the body.
func rateLimitError(status int, header http.Header, body []byte, during string) error {
	if status != http.StatusForbidden && status != http.StatusTooManyRequests {
		return nil
	}

	exhausted := header.Get("X-RateLimit-Remaining") == "0"
	if !exhausted && !bytes.Contains(bytes.ToLower(body), []byte("rate limit")) {
		return nil
	}

	msg := fmt.Sprintf("GitHub rate limit hit during %s.", during)
	if details := rateLimitDetails(header); details != "" {
		msg += " " + details
	}
	return errors.RateLimitError(msg, nil).WithContext("status", status)
}

// rateLimitDetails renders the quota headers present on a response.
func rateLimitDetails(header http.Header) string {
	var parts []string

	for _, h := range []struct{ header, key string }{
		{"X-RateLimit-Remaining", "remaining"},
		{"X-RateLimit-Limit", "limit"},
		{"X-RateLimit-Resource", "resource"},
	} {
		if v := header.Get(h.header); v != "" {
			parts = append(parts, h.key+"="+v)
		}
	}

	if reset := header.Get("X-RateLimit-Reset"); reset != "" {
		if secs, err := strconv.ParseInt(reset, 10, 64); err == nil && secs >= 0 {
			parts = append(parts, "reset_utc="+time.Unix(secs, 0).UTC().Format(time.RFC3339))
		}
	}

	if v := header.Get("Retry-After"); v != "" {
		parts = append(parts, "retry_after="+v+"s")
	}

	return strings.Join(parts, " ")
}
