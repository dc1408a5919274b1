// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package buildcontext

import (
	"path"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// JunkDirs are build, dependency and cache directories. Anything below one is dropped.
var JunkDirs = map[string]bool{
	"node_modules":  true,
	".git":          true,
	"__pycache__":   true,
	".tox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".venv":         true,
	"venv":          true,
	"env":           true,
	".env":          true,
	"vendor":        true,
	"dist":          true,
	"build":         true,
	".next":         true,
	".nuxt":         true,
	"out":           true,
	"target":        true,
	".idea":         true,
	".vscode":       true,
	".gradle":       true,
	".cache":        true,
	".eggs":         true,
	"egg-info":      true,
	"site-packages": true,
	"coverage":      true,
	".coverage":     true,
	"htmlcov":       true,
	".terraform":    true,
	".serverless":   true,
}

// JunkExtensions are binary, generated and lockfile extensions.
// Compound suffixes (".min.js") are matched against the last two extensions.
var JunkExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".svg": true, ".webp": true, ".tiff": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".pyc": true, ".pyo": true, ".so": true, ".o": true, ".a": true,
	".dylib": true, ".dll": true, ".exe": true, ".class": true, ".jar": true,
	".war": true, ".whl": true, ".egg": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".rar": true, ".7z": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wav": true,
	".flac": true, ".ogg": true,
	".bin": true, ".dat": true, ".db": true, ".sqlite": true, ".sqlite3": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true,
	".lock": true, ".map": true,
	".min.js": true, ".min.css": true,
}

// JunkNames are lockfiles and OS metadata files, matched on the lowercased base name.
var JunkNames = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"bun.lockb":         true,
	"gemfile.lock":      true,
	"pipfile.lock":      true,
	"poetry.lock":       true,
	"composer.lock":     true,
	"cargo.lock":        true,
	".ds_store":         true,
	"thumbs.db":         true,
	".gitattributes":    true,
}

// AllowedDotfiles are the hidden files worth keeping.
var AllowedDotfiles = map[string]bool{
	".env.example":   true,
	".dockerignore":  true,
	".gitignore":     true,
	".eslintrc.js":   true,
	".eslintrc.json": true,
	".prettierrc":    true,
	".babelrc":       true,
	".editorconfig":  true,
}

// Excluder applies user-supplied gitignore-style patterns on top of the fixed lists.
// A nil *Excluder excludes nothing.
type Excluder struct {
	patterns []string
	matcher  *ignore.GitIgnore
}

// NewExcluder compiles patterns. It returns nil when there is nothing to compile.
func NewExcluder(patterns []string) *Excluder {
	var lines []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return &Excluder{
		patterns: lines,
		matcher:  ignore.CompileIgnoreLines(lines...),
	}
}

// Excludes reports whether p matches any configured pattern.
func (e *Excluder) Excludes(p string) bool {
	if e == nil || e.matcher == nil {
		return false
	}
	return e.matcher.MatchesPath(p)
}

// Patterns returns the compiled pattern lines.
func (e *Excluder) Patterns() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.patterns...)
}

// Filter returns the blob nodes that survive the junk rules.
// It does not modify nodes and the result order is unspecified.
func Filter(nodes []TreeNode, b Budget, ex *Excluder) []TreeNode {
	out := make([]TreeNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind != NodeBlob {
			continue
		}
		if IsJunk(n.Path, n.Size, b.BigFileCeiling) || ex.Excludes(n.Path) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// IsJunk applies the fixed junk rules to a single blob.
func IsJunk(p string, size, ceiling int64) bool {
	dirs, name := splitPath(p)
	for _, d := range dirs {
		if JunkDirs[strings.ToLower(d)] {
			return true
		}
	}

	lower := strings.ToLower(name)
	if hasJunkExtension(lower) {
		return true
	}
	if JunkNames[lower] {
		return true
	}
	if size > ceiling {
		return true
	}
	if strings.HasPrefix(name, ".") && !AllowedDotfiles[lower] {
		return true
	}
	return false
}

func hasJunkExtension(lowerName string) bool {
	ext := path.Ext(lowerName)
	if ext == "" || ext == lowerName {
		// no extension, or a dotfile such as ".gitignore"
		return false
	}
	if JunkExtensions[ext] {
		return true
	}
	stem := strings.TrimSuffix(lowerName, ext)
	if inner := path.Ext(stem); inner != "" && inner != stem {
		return JunkExtensions[inner+ext]
	}
	return false
}

// splitPath returns the ancestor directory names and the base name of p.
func splitPath(p string) ([]string, string) {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	return parts[:len(parts)-1], parts[len(parts)-1]
}
