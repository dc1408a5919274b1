// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package platform provides access to hosted git repositories.
package platform

import (
	"context"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/buildcontext"
)

// Platform is a hosted git service that can describe and serve a repository.
type Platform interface {
	// Name returns the platform name.
	Name() string

	// GetRepo retrieves repository metadata.
	GetRepo(ctx context.Context, repo RepoRef) (*RepoInfo, error)

	// GetTree lists every entry of the repository at ref, recursively.
	GetTree(ctx context.Context, repo RepoRef, ref string) ([]buildcontext.TreeNode, error)

	// GetFileContent retrieves a file's raw content at ref.
	GetFileContent(ctx context.Context, repo RepoRef, path, ref string) (string, error)
}

// RepoRef identifies a repository by owner and name.
type RepoRef struct {
	Owner string
	Name  string
}

// String returns "owner/name".
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// RepoInfo contains repository metadata.
type RepoInfo struct {
	DefaultBranch string
	Description   string
	Language      string
}

// Snapshot lists the repository and wraps it with its metadata, ready for the
// context pipeline.
func Snapshot(ctx context.Context, p Platform, repo RepoRef) (buildcontext.RepoSnapshot, *RepoInfo, error) {
	info, err := p.GetRepo(ctx, repo)
	if err != nil {
		return buildcontext.RepoSnapshot{}, nil, err
	}

	tree, err := p.GetTree(ctx, repo, info.DefaultBranch)
	if err != nil {
		return buildcontext.RepoSnapshot{}, nil, err
	}

	return buildcontext.RepoSnapshot{
		Tree:        tree,
		Description: info.Description,
		Language:    info.Language,
	}, info, nil
}
