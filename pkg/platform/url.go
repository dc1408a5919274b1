// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"regexp"
	"strings"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/errors"
)

// repoURLPattern accepts https://github.com/OWNER/REPO with an optional .git
// suffix or trailing slash.
var repoURLPattern = regexp.MustCompile(`^https?://github\.com/([\w.\-]+)/([\w.\-]+?)(?:\.git)?/?$`)

// ParseRepoURL extracts owner and name from a GitHub repository URL.
func ParseRepoURL(raw string) (RepoRef, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return RepoRef{}, errors.ValidationError("github_url must not be empty.", nil)
	}

	m := repoURLPattern.FindStringSubmatch(u)
	if m == nil {
		return RepoRef{}, errors.ValidationError(
			"Invalid GitHub URL. Expected https://github.com/OWNER/REPO", nil).
			WithContext("url", u)
	}
	return RepoRef{Owner: m[1], Name: m[2]}, nil
}
