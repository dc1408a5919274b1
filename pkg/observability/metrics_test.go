// Package observability tests
package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordRun()
	m.RecordRun()
	m.RecordFailure()
	m.RecordEmpty()
	m.RecordRateLimited()
	m.RecordCacheHit(true)
	m.RecordCacheHit(false)
	m.RecordCacheHit(false)
	m.RecordContext(3, 1200)
	m.RecordContext(2, 800)
	m.RecordLLMCall(false)
	m.RecordLLMCall(true)
	m.RecordFlagged()

	want := Snapshot{
		Runs:           2,
		Failures:       1,
		Empty:          1,
		RateLimited:    1,
		CacheHits:      1,
		CacheMisses:    2,
		FilesFetched:   5,
		CharsAssembled: 2000,
		LLMCalls:       2,
		LLMRepairs:     1,
		Flagged:        1,
	}
	if got := m.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRun()
			m.RecordContext(1, 10)
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.Runs != 50 || s.FilesFetched != 50 || s.CharsAssembled != 500 {
		t.Errorf("Unexpected snapshot after concurrent updates: %+v", s)
	}
}

func TestSnapshotJSON(t *testing.T) {
	data, err := json.Marshal(Snapshot{RateLimited: 4})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"rate_limited":4`) {
		t.Errorf("Unexpected JSON: %s", data)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", "json", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "repo", "octo/demo")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Info should be filtered at warn level")
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("Expected one JSON line, got %q: %v", out, err)
	}
	if entry["msg"] != "shown" || entry["repo"] != "octo/demo" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("debug", "text", &buf).Debug("details", "n", 3)

	if !strings.Contains(buf.String(), "msg=details") || !strings.Contains(buf.String(), "n=3") {
		t.Errorf("Unexpected text output: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
