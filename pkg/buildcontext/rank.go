// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package buildcontext

import (
	"cmp"
	"slices"
	"strings"
)

// Priority tiers.
const (
	TierKey    = 1
	TierSource = 2
	TierBoring = 3
)

// KeyFiles tell the most about a project: readmes, manifests, build files, licenses.
var KeyFiles = map[string]bool{
	"readme": true, "readme.md": true, "readme.rst": true, "readme.txt": true,
	"package.json": true, "pyproject.toml": true, "setup.py": true, "setup.cfg": true,
	"cargo.toml": true, "go.mod": true, "go.sum": true, "build.gradle": true,
	"pom.xml": true, "gemfile": true, "mix.exs": true, "project.clj": true,
	"makefile": true, "cmakelists.txt": true, "dockerfile": true,
	"docker-compose.yml": true, "docker-compose.yaml": true,
	".env.example": true, "requirements.txt": true, "environment.yml": true,
	"tsconfig.json": true, "vite.config.ts": true, "vite.config.js": true,
	"webpack.config.js": true, "rollup.config.js": true, "next.config.js": true,
	"next.config.mjs": true, "nuxt.config.ts": true, "angular.json": true,
	"license": true, "license.md": true, "license.txt": true,
	"contributing.md": true, "changelog.md": true,
}

// BoringDirs hold tests, examples, docs, CI config and tooling.
var BoringDirs = map[string]bool{
	"test": true, "tests": true, "spec": true, "specs": true, "__tests__": true,
	"examples": true, "example": true, "samples": true, "sample": true,
	"docs": true, "doc": true, "documentation": true,
	".github": true, ".circleci": true, ".gitlab": true,
	"scripts": true, "tools": true, "benchmarks": true,
}

// Tier classifies a path. It depends on nothing but the path.
func Tier(p string) int {
	dirs, name := splitPath(p)
	name = strings.ToLower(name)
	if KeyFiles[name] || strings.HasPrefix(name, "readme") {
		return TierKey
	}
	for _, d := range dirs {
		if BoringDirs[strings.ToLower(d)] {
			return TierBoring
		}
	}
	return TierSource
}

// Rank classifies nodes and returns them in canonical order:
// ascending tier, then ascending size, then path.
func Rank(nodes []TreeNode) []ClassifiedFile {
	out := make([]ClassifiedFile, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ClassifiedFile{Path: n.Path, Size: n.Size, Tier: Tier(n.Path)})
	}
	slices.SortFunc(out, compareCanonical)
	return out
}

func compareCanonical(a, b ClassifiedFile) int {
	if c := cmp.Compare(a.Tier, b.Tier); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Size, b.Size); c != 0 {
		return c
	}
	return strings.Compare(a.Path, b.Path)
}
