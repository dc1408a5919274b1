// Package version reports build information for repo-summarizer.
package version

import (
	"runtime"
	"runtime/debug"
	"sync"
)

// Version is the release version.
// Set via -ldflags "-X github.com/cicd-ai-toolkit/repo-summarizer/pkg/version.Version=..."
var Version = "dev"

// BuildDate and GitCommit fall back to the VCS stamp Go embeds in the binary
// when not set at link time.
var (
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

var stampOnce sync.Once

// stamp fills BuildDate and GitCommit from the embedded build settings.
func stamp() {
	stampOnce.Do(func() {
		info, ok := readBuildInfo()
		if !ok {
			return
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if GitCommit == "unknown" && s.Value != "" {
					GitCommit = shortRevision(s.Value)
				}
			case "vcs.time":
				if BuildDate == "unknown" && s.Value != "" {
					BuildDate = s.Value
				}
			}
		}
	})
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// String returns the bare version.
func String() string {
	return Version
}

// FullString returns the version with commit and build date.
func FullString() string {
	if Version == "dev" {
		return "repo-summarizer development version"
	}
	stamp()
	return "repo-summarizer " + Version + " (" + GitCommit + ", " + BuildDate + ")"
}

// Info returns all version information as a map.
func Info() map[string]string {
	stamp()
	return map[string]string{
		"version":   Version,
		"buildDate": BuildDate,
		"gitCommit": GitCommit,
		"goVersion": runtime.Version(),
	}
}
