package version

import (
	"runtime/debug"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name        string
		info        debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{
			name: "module version and clean revision",
			info: debug.BuildInfo{
				Main:     debug.Module{Version: "v1.4.0"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			},
			wantVersion: "v1.4.0",
			wantCommit:  "0123456",
		},
		{
			name: "devel build with dirty tree",
			info: debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			wantVersion: "",
			wantCommit:  "abc-dirty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldV, oldC := Version, Commit
			t.Cleanup(func() { Version, Commit = oldV, oldC })
			Version, Commit = "", ""

			fromBuildInfo(&tt.info)
			if Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", Version, tt.wantVersion)
			}
			if Commit != tt.wantCommit {
				t.Errorf("Commit = %q, want %q", Commit, tt.wantCommit)
			}
		})
	}
}

func TestFromBuildInfoKeepsLdflags(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })
	Version, Commit = "v9.9.9", "feed"

	fromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789"}},
	})
	if Version != "v9.9.9" || Commit != "feed" {
		t.Errorf("got %q/%q, want ldflags values kept", Version, Commit)
	}
}

func TestFull(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })
	Version, Commit = "v1.0.0", "abc1234"

	if got, want := Full(), "v1.0.0 (commit: abc1234)"; got != want {
		t.Errorf("Full() = %q, want %q", got, want)
	}
}
