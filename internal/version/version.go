// Package version reports the keypad build version.
//
// Set at link time:
//
//	go build -ldflags="-X github.com/muurk/keypad/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/keypad/internal/version.Commit=abc123"
//
// Without ldflags the module version and VCS stamp from the build info are
// used, and as a last resort "dev".
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version, published in the state document.
	Version = ""
	// Commit is the short git revision.
	Commit = ""
)

const shortRevision = 7

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(info)
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo fills whatever ldflags left empty.
func fromBuildInfo(info *debug.BuildInfo) {
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if Commit == "" && revision != "" {
		if len(revision) > shortRevision {
			revision = revision[:shortRevision]
		}
		Commit = revision
		if modified == "true" {
			Commit += "-dirty"
		}
	}
}

// Full returns the version with the commit, e.g. "v1.2.3 (commit: abc1234)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
