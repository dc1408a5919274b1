// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

//go:build integration

package platform

import (
	"context"
	"os"
	"testing"
	"time"
)

// Run with: go test -tags integration ./pkg/platform/
func TestGitHubIntegration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("GITHUB_TOKEN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo, err := ParseRepoURL("https://github.com/psf/requests")
	if err != nil {
		t.Fatalf("ParseRepoURL: %v", err)
	}

	snap, info, err := Snapshot(ctx, NewGitHubClient(token), repo)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if info.DefaultBranch == "" {
		t.Error("default branch is empty")
	}
	if len(snap.Tree) == 0 {
		t.Fatal("tree is empty")
	}

	body, err := NewGitHubClient(token).GetFileContent(ctx, repo, "README.md", info.DefaultBranch)
	if err != nil {
		t.Fatalf("GetFileContent: %v", err)
	}
	if len(body) == 0 {
		t.Error("README.md is empty")
	}
}
