// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package observability

import (
	"sync/atomic"
)

// Metrics counts summarizer activity. Safe for concurrent use.
type Metrics struct {
	runs           atomic.Int64
	failures       atomic.Int64
	empty          atomic.Int64
	rateLimited    atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	filesFetched   atomic.Int64
	charsAssembled atomic.Int64
	llmCalls       atomic.Int64
	llmRepairs     atomic.Int64
	flagged        atomic.Int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Runs           int64 `json:"runs"`
	Failures       int64 `json:"failures"`
	Empty          int64 `json:"empty"`
	RateLimited    int64 `json:"rate_limited"`
	CacheHits      int64 `json:"cache_hits"`
	CacheMisses    int64 `json:"cache_misses"`
	FilesFetched   int64 `json:"files_fetched"`
	CharsAssembled int64 `json:"chars_assembled"`
	LLMCalls       int64 `json:"llm_calls"`
	LLMRepairs     int64 `json:"llm_repairs"`
	Flagged        int64 `json:"flagged_contexts"`
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordRun records one summarize request.
func (m *Metrics) RecordRun() {
	m.runs.Add(1)
}

// RecordFailure records a request that ended in an error.
func (m *Metrics) RecordFailure() {
	m.failures.Add(1)
}

// RecordEmpty records a repository with nothing to summarize.
func (m *Metrics) RecordEmpty() {
	m.empty.Add(1)
}

// RecordRateLimited records a request refused by the upstream rate limit.
func (m *Metrics) RecordRateLimited() {
	m.rateLimited.Add(1)
}

// RecordCacheHit records a cache hit/miss.
func (m *Metrics) RecordCacheHit(hit bool) {
	if hit {
		m.cacheHits.Add(1)
	} else {
		m.cacheMisses.Add(1)
	}
}

// RecordContext records an assembled context document.
func (m *Metrics) RecordContext(files, chars int) {
	m.filesFetched.Add(int64(files))
	m.charsAssembled.Add(int64(chars))
}

// RecordLLMCall records a model round-trip; repair marks a retry after an
// unparseable answer.
func (m *Metrics) RecordLLMCall(repair bool) {
	m.llmCalls.Add(1)
	if repair {
		m.llmRepairs.Add(1)
	}
}

// RecordFlagged records a context whose file bodies look like a prompt
// injection attempt.
func (m *Metrics) RecordFlagged() {
	m.flagged.Add(1)
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Runs:           m.runs.Load(),
		Failures:       m.failures.Load(),
		Empty:          m.empty.Load(),
		RateLimited:    m.rateLimited.Load(),
		CacheHits:      m.cacheHits.Load(),
		CacheMisses:    m.cacheMisses.Load(),
		FilesFetched:   m.filesFetched.Load(),
		CharsAssembled: m.charsAssembled.Load(),
		LLMCalls:       m.llmCalls.Load(),
		LLMRepairs:     m.llmRepairs.Load(),
		Flagged:        m.flagged.Load(),
	}
}
