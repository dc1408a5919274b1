// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/repo-summarizer/pkg/buildcontext"
)

func TestMemoryCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[string](4, time.Minute)

	_, err := c.Get(ctx, "missing")
	assert.Same(t, ErrCacheMiss, err)

	require.NoError(t, c.Set(ctx, "k", "v"))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[int](2, time.Minute)

	c.Set(ctx, "a", 1)
	c.Set(ctx, "b", 2)
	c.Get(ctx, "a") // a is now most recent
	c.Set(ctx, "c", 3)

	_, err := c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
	v, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[string](4, 20*time.Millisecond)

	c.Set(ctx, "k", "v")
	assert.Eventually(t, func() bool {
		_, err := c.Get(ctx, "k")
		return err == ErrCacheMiss
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryCacheClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache[string](4, 0)

	c.Set(ctx, "a", "1")
	c.Set(ctx, "b", "2")
	require.NoError(t, c.Clear(ctx))
	assert.Zero(t, c.Len())
}

func TestKeyGenerator(t *testing.T) {
	kg := NewKeyGenerator("")

	key := kg.Generate("a", "b")
	assert.True(t, strings.HasPrefix(key, "repo-summarizer:"))
	assert.Equal(t, key, kg.Generate("a", "b"))
	assert.NotEqual(t, kg.Generate("ab", "c"), kg.Generate("a", "bc"))
	assert.True(t, strings.HasPrefix(NewKeyGenerator("x").Generate("a"), "x:"))
}

func TestKeyGeneratorForRepo(t *testing.T) {
	kg := NewKeyGenerator("")
	b := buildcontext.DefaultBudget()

	base := kg.ForRepo("Octo/Demo", b, []string{"gen/", "*.pb.go"})
	assert.Equal(t, base, kg.ForRepo("octo/demo", b, []string{"*.pb.go", "gen/"}),
		"case and pattern order should not matter")

	smaller := b
	smaller.CtxBudget = 1000
	assert.NotEqual(t, base, kg.ForRepo("octo/demo", smaller, []string{"gen/", "*.pb.go"}))
	assert.NotEqual(t, base, kg.ForRepo("octo/other", b, []string{"gen/", "*.pb.go"}))

	// concurrency changes how fast bodies arrive, not what is assembled
	faster := b
	faster.Concurrency = 10
	assert.Equal(t, base, kg.ForRepo("octo/demo", faster, []string{"gen/", "*.pb.go"}))
}
