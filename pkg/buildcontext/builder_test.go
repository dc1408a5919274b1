// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package buildcontext

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
)

type recordingFetcher struct {
	calls  [][]string
	bodies map[string]string
	err    error
}

func (f *recordingFetcher) FetchBodies(_ context.Context, paths []string) (map[string]string, error) {
	f.calls = append(f.calls, append([]string(nil), paths...))
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string)
	for _, p := range paths {
		if body, ok := f.bodies[p]; ok {
			out[p] = body
		}
	}
	return out, nil
}

func TestBuildScenarioA(t *testing.T) {
	fetcher := &recordingFetcher{bodies: map[string]string{
		"README.md":        "# Demo",
		"src/main.go":      "package main",
		"test/foo_test.go": "package test",
	}}
	snap := RepoSnapshot{
		Tree: []TreeNode{
			blob("README.md", 500),
			blob("src/main.go", 2000),
			blob("node_modules/x.js", 100),
			blob("test/foo_test.go", 300),
			{Path: "src", Kind: NodeTree},
		},
		Description: "Demo repo",
		Language:    "Go",
	}

	res, err := NewBuilder(DefaultBudget()).Build(context.Background(), snap, fetcher)
	require.NoError(t, err)

	require.Len(t, fetcher.calls, 1, "fetcher should be called exactly once")
	assert.Equal(t, []string{"README.md", "src/main.go", "test/foo_test.go"}, fetcher.calls[0])
	assert.Equal(t, []string{"README.md", "src/main.go", "test/foo_test.go"}, res.Document.Files())

	out := res.Document.String()
	assert.True(t, strings.HasPrefix(out, "## Directory Tree\n"))
	assert.NotContains(t, out, "node_modules")
	assert.Contains(t, out, "## Repository Description\n\nDemo repo\n")
	assert.Contains(t, out, "## Primary Language\n\nGo\n")

	assert.Equal(t, Stats{Listed: 5, Eligible: 3, Selected: 3, Included: 3}, res.Stats)
}

// Scenario D: an all-junk tree signals the empty outcome and never fetches.
func TestBuildScenarioD(t *testing.T) {
	fetcher := &recordingFetcher{}
	snap := RepoSnapshot{Tree: []TreeNode{
		blob("node_modules/a.js", 10),
		blob("dist/bundle.js", 10),
		blob("logo.png", 10),
	}}

	res, err := NewBuilder(DefaultBudget()).Build(context.Background(), snap, fetcher)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNothingToSummarize)
	assert.True(t, errors.IsType(err, errors.ErrEmpty))
	assert.Empty(t, fetcher.calls)
}

func TestBuildPropagatesFetcherError(t *testing.T) {
	limited := errors.RateLimitError("GitHub rate limit hit during content fetch for a.go.", nil)
	fetcher := &recordingFetcher{err: limited}

	res, err := NewBuilder(DefaultBudget()).Build(context.Background(),
		RepoSnapshot{Tree: []TreeNode{blob("a.go", 10)}}, fetcher)

	assert.Nil(t, res)
	assert.Same(t, limited, err)
}

func TestBuildMissingBodiesAreSkipped(t *testing.T) {
	fetcher := &recordingFetcher{bodies: map[string]string{"b.go": "package b", "c.go": ""}}
	snap := RepoSnapshot{Tree: []TreeNode{blob("a.go", 1), blob("b.go", 2), blob("c.go", 3)}}

	res, err := NewBuilder(DefaultBudget()).Build(context.Background(), snap, fetcher)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.go"}, res.Document.Files())
	assert.Equal(t, 3, res.Stats.Selected)
	assert.Equal(t, 1, res.Stats.Included)
}

func TestBuildTreeListsUnselectedFiles(t *testing.T) {
	b := DefaultBudget()
	b.MaxFetch = 1

	var tree []TreeNode
	for i := 0; i < 5; i++ {
		tree = append(tree, blob(fmt.Sprintf("pkg/file%d.go", i), int64(10+i)))
	}
	fetcher := &recordingFetcher{bodies: map[string]string{"pkg/file0.go": "package pkg"}}

	res, err := NewBuilder(b).Build(context.Background(), RepoSnapshot{Tree: tree}, fetcher)
	require.NoError(t, err)

	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, []string{"pkg/file0.go"}, fetcher.calls[0])
	for i := 0; i < 5; i++ {
		assert.Contains(t, res.Document.Sections[0].Text, fmt.Sprintf("file%d.go", i))
	}
}

func TestBuildWithExcludePatterns(t *testing.T) {
	fetcher := &recordingFetcher{bodies: map[string]string{"main.go": "package main"}}
	snap := RepoSnapshot{Tree: []TreeNode{blob("main.go", 1), blob("gen/api.pb.go", 1)}}

	res, err := NewBuilder(DefaultBudget(), WithExcludePatterns([]string{"gen/"})).
		Build(context.Background(), snap, fetcher)
	require.NoError(t, err)
	assert.NotContains(t, res.Document.String(), "api.pb.go")
}

type firstOnly struct{}

func (firstOnly) Select(files []ClassifiedFile, _ int) []ClassifiedFile {
	if len(files) == 0 {
		return nil
	}
	return files[:1]
}

func TestBuildWithCustomSelector(t *testing.T) {
	fetcher := &recordingFetcher{}
	snap := RepoSnapshot{Tree: []TreeNode{blob("README.md", 1), blob("main.go", 1)}}

	_, err := NewBuilder(DefaultBudget(), WithSelector(firstOnly{})).
		Build(context.Background(), snap, fetcher)
	require.NoError(t, err)
	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, []string{"README.md"}, fetcher.calls[0])
}

func TestBuildSelectsAgainstRemainingBudget(t *testing.T) {
	b := DefaultBudget()
	b.CtxBudget = 400

	// the header eats most of the budget, leaving too little for a.go
	snap := RepoSnapshot{
		Tree:        []TreeNode{blob("a.go", 300)},
		Description: strings.Repeat("d", 300),
	}
	fetcher := &recordingFetcher{}

	res, err := NewBuilder(b).Build(context.Background(), snap, fetcher)
	require.NoError(t, err)
	assert.Empty(t, fetcher.calls)
	assert.Equal(t, 0, res.Stats.Selected)
}

func TestFetcherFunc(t *testing.T) {
	var got []string
	f := FetcherFunc(func(_ context.Context, paths []string) (map[string]string, error) {
		got = paths
		return nil, nil
	})
	_, err := f.FetchBodies(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)
}

func TestBudgetValidate(t *testing.T) {
	require.NoError(t, DefaultBudget().Validate())

	b := DefaultBudget()
	b.MaxFetch = 0
	assert.ErrorContains(t, b.Validate(), "max_fetch")
}
