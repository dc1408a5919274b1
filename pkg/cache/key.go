// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/buildcontext"
)

// KeyGenerator generates cache keys.
type KeyGenerator struct {
	prefix string
}

// NewKeyGenerator creates a new key generator.
func NewKeyGenerator(prefix string) *KeyGenerator {
	if prefix == "" {
		prefix = "repo-summarizer"
	}
	return &KeyGenerator{
		prefix: prefix,
	}
}

// Generate generates a cache key from inputs.
func (kg *KeyGenerator) Generate(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(input))
		h.Write([]byte{0}) // "ab","c" and "a","bc" must differ
	}
	return kg.prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// ForRepo generates a key for a repository under the given limits. Owner and
// name compare case-insensitively, as GitHub does.
func (kg *KeyGenerator) ForRepo(repo string, b buildcontext.Budget, exclude []string) string {
	patterns := append([]string(nil), exclude...)
	sort.Strings(patterns)

	return kg.Generate(
		strings.ToLower(repo),
		fmt.Sprintf("%d/%d/%d/%d/%d", b.CtxBudget, b.FileCap, b.MaxFetch, b.BigFileCeiling, b.TreeLineCap),
		strings.Join(patterns, "\n"),
	)
}
