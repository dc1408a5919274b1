// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is an in-memory LRU cache whose entries expire after a fixed TTL.
type MemoryCache[V any] struct {
	lru *expirable.LRU[string, V]
}

var _ Cache[string] = (*MemoryCache[string])(nil)

// NewMemoryCache creates a cache holding at most size entries for ttl each.
// A non-positive ttl keeps entries until they are evicted.
func NewMemoryCache[V any](size int, ttl time.Duration) *MemoryCache[V] {
	if ttl < 0 {
		ttl = 0
	}
	return &MemoryCache[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

// Get retrieves a value from cache.
func (m *MemoryCache[V]) Get(_ context.Context, key string) (V, error) {
	v, ok := m.lru.Get(key)
	if !ok {
		var zero V
		return zero, ErrCacheMiss
	}
	return v, nil
}

// Set stores a value in cache.
func (m *MemoryCache[V]) Set(_ context.Context, key string, value V) error {
	m.lru.Add(key, value)
	return nil
}

// Delete removes a value from cache.
func (m *MemoryCache[V]) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

// Clear removes all entries from cache.
func (m *MemoryCache[V]) Clear(_ context.Context) error {
	m.lru.Purge()
	return nil
}

// Len returns the number of live entries.
func (m *MemoryCache[V]) Len() int {
	return m.lru.Len()
}
