package platform

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/buildcontext"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
)

// fakePlatform serves file contents from a map.
type fakePlatform struct {
	files   map[string]string
	fail    map[string]error
	delay   time.Duration
	calls   atomic.Int32
	mu      sync.Mutex
	fetched []string
}

func (f *fakePlatform) Name() string { return "fake" }

func (f *fakePlatform) GetRepo(context.Context, RepoRef) (*RepoInfo, error) {
	return &RepoInfo{DefaultBranch: "main"}, nil
}

func (f *fakePlatform) GetTree(context.Context, RepoRef, string) ([]buildcontext.TreeNode, error) {
	return nil, nil
}

func (f *fakePlatform) GetFileContent(ctx context.Context, _ RepoRef, path, ref string) (string, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if err, ok := f.fail[path]; ok {
		return "", err
	}
	f.mu.Lock()
	f.fetched = append(f.fetched, path)
	f.mu.Unlock()
	body, ok := f.files[path]
	if !ok {
		return "", errors.PlatformError("content fetch for "+path+" returned 404", nil)
	}
	return body, nil
}

func TestBodyFetcher_FetchBodies(t *testing.T) {
	p := &fakePlatform{
		files: map[string]string{"a.go": "package a", "b.go": "package b"},
		fail:  map[string]error{"c.go": errors.TimeoutError("slow", nil)},
	}
	f := NewBodyFetcher(p, demo, "main", 2, nil)

	bodies, err := f.FetchBodies(context.Background(), []string{"a.go", "b.go", "c.go", "missing.go"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.go": "package a", "b.go": "package b"}, bodies)
	assert.EqualValues(t, 4, p.calls.Load())
}

func TestBodyFetcher_Empty(t *testing.T) {
	p := &fakePlatform{}
	bodies, err := NewBodyFetcher(p, demo, "main", 3, nil).FetchBodies(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, bodies)
	assert.Zero(t, p.calls.Load())
}

func TestBodyFetcher_RateLimitAbortsBatch(t *testing.T) {
	limited := errors.RateLimitError("GitHub rate limit hit during content fetch for a.go.", nil)
	p := &fakePlatform{
		files: map[string]string{"b.go": "b", "c.go": "c", "d.go": "d"},
		fail:  map[string]error{"a.go": limited},
	}
	f := NewBodyFetcher(p, demo, "main", 1, nil)

	bodies, err := f.FetchBodies(context.Background(), []string{"a.go", "b.go", "c.go", "d.go"})
	assert.Nil(t, bodies)
	assert.Same(t, limited, err)
	assert.EqualValues(t, 1, p.calls.Load(), "pending fetches should be skipped")
}

func TestBodyFetcher_RateLimitCancelsInFlight(t *testing.T) {
	limited := errors.RateLimitError("limited", nil)
	p := &fakePlatform{
		files: map[string]string{"slow1": "x", "slow2": "y"},
		fail:  map[string]error{"fast": limited},
	}
	slow := &slowOnly{fakePlatform: p, slow: map[string]bool{"slow1": true, "slow2": true}}

	start := time.Now()
	_, err := NewBodyFetcher(slow, demo, "main", 3, nil).
		FetchBodies(context.Background(), []string{"slow1", "slow2", "fast"})
	assert.True(t, errors.IsType(err, errors.ErrRateLimit))
	assert.Less(t, time.Since(start), 5*time.Second, "in-flight fetches should be cancelled")
}

// slowOnly blocks the named paths until their context is cancelled.
type slowOnly struct {
	*fakePlatform
	slow map[string]bool
}

func (s *slowOnly) GetFileContent(ctx context.Context, repo RepoRef, path, ref string) (string, error) {
	if s.slow[path] {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(10 * time.Second):
		}
	}
	return s.fakePlatform.GetFileContent(ctx, repo, path, ref)
}

func TestBodyFetcher_ParentCancelled(t *testing.T) {
	p := &fakePlatform{files: map[string]string{"a.go": "a"}, delay: time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	bodies, err := NewBodyFetcher(p, demo, "main", 1, nil).FetchBodies(ctx, []string{"a.go"})
	assert.Nil(t, bodies)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewBodyFetcherDefaults(t *testing.T) {
	f := NewBodyFetcher(&fakePlatform{}, demo, "main", 0, nil)
	assert.Equal(t, buildcontext.DefaultConcurrency, f.concurrency)
	assert.NotNil(t, f.logger)
}

func TestBodyFetcherDrivesBuilder(t *testing.T) {
	p := &fakePlatform{files: map[string]string{"README.md": "# demo", "main.go": "package main"}}
	snap := buildcontext.RepoSnapshot{Tree: []buildcontext.TreeNode{
		{Path: "README.md", Kind: buildcontext.NodeBlob, Size: 6},
		{Path: "main.go", Kind: buildcontext.NodeBlob, Size: 12},
	}}

	res, err := buildcontext.NewBuilder(buildcontext.DefaultBudget()).
		Build(context.Background(), snap, NewBodyFetcher(p, demo, "main", 2, nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "main.go"}, res.Document.Files())
}
