// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ghTokenTimeout bounds the gh CLI lookup
const ghTokenTimeout = 5 * time.Second

// ghAuthToken asks the GitHub CLI for its stored token. Replaced in tests.
var ghAuthToken = func(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ghTokenTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "gh", "auth", "token").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// DiscoverToken returns a GitHub token from GITHUB_TOKEN, falling back to
// `gh auth token`. It returns "" when neither yields one; anonymous access
// still works with a lower rate limit.
func DiscoverToken(ctx context.Context) string {
	if t := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); t != "" {
		return t
	}

	t, err := ghAuthToken(ctx)
	if err != nil {
		return ""
	}
	return t
}
