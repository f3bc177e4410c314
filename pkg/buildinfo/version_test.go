package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestApplyBuildInfo(t *testing.T) {
	restore := func(v, c, d string) func() {
		return func() { Version, Commit, Date = v, c, d }
	}(Version, Commit, Date)
	defer restore()

	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	Version, Commit, Date = "dev", "none", "unknown"
	applyBuildInfo(bi)
	if Version != "v0.3.1" || Commit != "abc123" || Date != "2026-01-02T03:04:05Z" {
		t.Errorf("got %s %s %s", Version, Commit, Date)
	}

	Version, Commit, Date = "v1.0.0", "stamped", "today"
	applyBuildInfo(bi)
	if Version != "v1.0.0" || Commit != "stamped" || Date != "today" {
		t.Errorf("ldflags values overwritten: %s %s %s", Version, Commit, Date)
	}

	Version = "dev"
	applyBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Errorf("Version = %q, want dev for (devel) builds", Version)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version: ") || !strings.Contains(tmpl, "commit: ") {
		t.Errorf("Template() = %q", tmpl)
	}
}
