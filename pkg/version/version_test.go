package version

import (
	"runtime"
	"runtime/debug"
	"sync"
	"testing"
)

func withBuildInfo(t *testing.T, settings ...debug.BuildSetting) {
	t.Helper()
	oldRead, oldDate, oldCommit := readBuildInfo, BuildDate, GitCommit
	t.Cleanup(func() {
		readBuildInfo, BuildDate, GitCommit = oldRead, oldDate, oldCommit
		stampOnce = sync.Once{}
	})

	BuildDate, GitCommit = "unknown", "unknown"
	stampOnce = sync.Once{}
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, true
	}
}

func TestInfoUsesVCSStamp(t *testing.T) {
	withBuildInfo(t,
		debug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		debug.BuildSetting{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
	)

	info := Info()
	if info["gitCommit"] != "0123456789ab" {
		t.Errorf("gitCommit = %q", info["gitCommit"])
	}
	if info["buildDate"] != "2026-01-02T03:04:05Z" {
		t.Errorf("buildDate = %q", info["buildDate"])
	}
	if info["goVersion"] != runtime.Version() {
		t.Errorf("goVersion = %q", info["goVersion"])
	}
}

func TestLinkerValuesWin(t *testing.T) {
	withBuildInfo(t, debug.BuildSetting{Key: "vcs.revision", Value: "ffff"})
	GitCommit = "abc123"

	if got := Info()["gitCommit"]; got != "abc123" {
		t.Errorf("gitCommit = %q, want the -ldflags value", got)
	}
}

func TestFullString(t *testing.T) {
	withBuildInfo(t)
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "dev"
	if got := FullString(); got != "repo-summarizer development version" {
		t.Errorf("FullString() = %q", got)
	}

	Version = "1.2.0"
	GitCommit, BuildDate = "abc", "2026-01-01"
	if got := FullString(); got != "repo-summarizer 1.2.0 (abc, 2026-01-01)" {
		t.Errorf("FullString() = %q", got)
	}
}
