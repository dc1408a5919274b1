// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/buildcontext"
	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
)

const (
	// DefaultGitHubAPI is the public GitHub REST endpoint.
	DefaultGitHubAPI = "https://api.github.com"

	// DefaultTimeout bounds each GitHub request.
	DefaultTimeout = 30 * time.Second

	userAgent  = "github-repo-summarizer"
	acceptJSON = "application/vnd.github+json"
	acceptRaw  = "application/vnd.github.raw+json"

	// errorBodyLimit caps how much of an error response ends up in messages
	errorBodyLimit = 300
)

// GitHubClient implements Platform for GitHub
type GitHubClient struct {
	token   string
	baseURL string // For GitHub Enterprise
	client  *http.Client
}

// githubRepo is the subset of GET /repos/{owner}/{repo} we read
type githubRepo struct {
	DefaultBranch string `json:"default_branch"`
	Description   string `json:"description"`
	Language      string `json:"language"`
}

// githubTree is the response of GET /repos/{owner}/{repo}/git/trees/{ref}
type githubTree struct {
	SHA       string           `json:"sha"`
	Tree      []githubTreeNode `json:"tree"`
	Truncated bool             `json:"truncated"`
}

type githubTreeNode struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// NewGitHubClient creates a new GitHub platform client. An empty token makes
// anonymous requests.
func NewGitHubClient(token string) *GitHubClient {
	return &GitHubClient{
		token:   token,
		baseURL: DefaultGitHubAPI,
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// SetBaseURL sets a custom base URL for GitHub Enterprise
func (g *GitHubClient) SetBaseURL(baseURL string) error {
	if err := validateBaseURL(baseURL); err != nil {
		return errors.ConfigError("invalid GitHub API URL", err).WithContext("url", baseURL)
	}
	g.baseURL = strings.TrimRight(baseURL, "/")
	return nil
}

// SetHTTPClient replaces the underlying HTTP client.
func (g *GitHubClient) SetHTTPClient(c *http.Client) {
	g.client = c
}

// Name returns the platform name.
func (g *GitHubClient) Name() string {
	return "github"
}

// GetRepo retrieves repository metadata. A repository without a default
// branch is reported on "main".
func (g *GitHubClient) GetRepo(ctx context.Context, repo RepoRef) (*RepoInfo, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s", g.baseURL, url.PathEscape(repo.Owner), url.PathEscape(repo.Name))

	status, body, header, err := g.get(ctx, endpoint, acceptJSON)
	if err != nil {
		return nil, err
	}

	if rl := rateLimitError(status, header, body, "repo metadata fetch"); rl != nil {
		return nil, rl
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errors.NotFoundError(fmt.Sprintf("Repo '%s' not found or is private.", repo), nil)
	case http.StatusForbidden:
		return nil, errors.PermissionError(
			fmt.Sprintf("Access denied for '%s'. Possibly private or rate-limited.", repo), nil)
	default:
		return nil, errors.PlatformError(
			fmt.Sprintf("GitHub API returned %d: %s", status, clip(body)), nil).
			WithContext("status", status)
	}

	var meta githubRepo
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, errors.PlatformError("failed to parse repo metadata", err)
	}

	info := &RepoInfo{
		DefaultBranch: meta.DefaultBranch,
		Description:   meta.Description,
		Language:      meta.Language,
	}
	if info.DefaultBranch == "" {
		info.DefaultBranch = "main"
	}
	return info, nil
}

// GetTree lists every entry of the repository at ref, recursively.
func (g *GitHubClient) GetTree(ctx context.Context, repo RepoRef, ref string) ([]buildcontext.TreeNode, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1",
		g.baseURL, url.PathEscape(repo.Owner), url.PathEscape(repo.Name), url.PathEscape(ref))

	status, body, header, err := g.get(ctx, endpoint, acceptJSON)
	if err != nil {
		return nil, err
	}

	if rl := rateLimitError(status, header, body, "tree fetch"); rl != nil {
		return nil, rl
	}
	if status != http.StatusOK {
		return nil, errors.PlatformError(
			fmt.Sprintf("Tree fetch failed (%d): %s", status, clip(body)), nil).
			WithContext("status", status)
	}

	var tree githubTree
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, errors.PlatformError("failed to parse repository tree", err)
	}

	nodes := make([]buildcontext.TreeNode, 0, len(tree.Tree))
	for _, n := range tree.Tree {
		nodes = append(nodes, buildcontext.TreeNode{
			Path: n.Path,
			Kind: buildcontext.NodeKind(n.Type),
			Size: n.Size,
		})
	}
	return nodes, nil
}

// GetFileContent retrieves a file's raw content at ref.
func (g *GitHubClient) GetFileContent(ctx context.Context, repo RepoRef, path, ref string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		g.baseURL, url.PathEscape(repo.Owner), url.PathEscape(repo.Name),
		escapePath(path), url.QueryEscape(ref))

	status, body, header, err := g.get(ctx, endpoint, acceptRaw)
	if err != nil {
		return "", err
	}

	if rl := rateLimitError(status, header, body, "content fetch for "+path); rl != nil {
		return "", rl
	}
	if status != http.StatusOK {
		return "", errors.PlatformError(fmt.Sprintf("content fetch for %s returned %d", path, status), nil).
			WithContext("status", status)
	}
	return string(body), nil
}

// get performs one GET request and returns the status, body and headers.
// Only transport failures are returned as errors.
func (g *GitHubClient) get(ctx context.Context, endpoint, accept string) (int, []byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, nil, errors.PlatformError("failed to create request", err)
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, nil, ctx.Err()
		}
		return 0, nil, nil, errors.PlatformError("GitHub request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, errors.PlatformError("failed to read response", err)
	}
	return resp.StatusCode, body, resp.Header, nil
}

// escapePath escapes each segment of a repository path.
func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func clip(body []byte) string {
	if len(body) > errorBodyLimit {
		return string(body[:errorBodyLimit])
	}
	return string(body)
}
