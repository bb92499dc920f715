package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests below mutate package state and must not run in parallel.

func restore(t *testing.T) {
	t.Helper()

	v, c, d := Version, Commit, Date

	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestApplyBuildInfo_FillsDefaults(t *testing.T) {
	restore(t)

	Version, Commit, Date = "dev", "none", "unknown"

	applyBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	assert.Equal(t, "v0.3.1", Version)
	assert.Equal(t, "0123456789ab", Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", Date)
	assert.Equal(t, "itree v0.3.1 (commit: 0123456789ab, built: 2026-01-02T03:04:05Z)", String())
}

func TestApplyBuildInfo_KeepsLinkerValues(t *testing.T) {
	restore(t)

	Version, Commit, Date = "v1.0.0", "abc", "yesterday"

	applyBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
	})

	assert.Equal(t, "v1.0.0", Version)
	assert.Equal(t, "abc", Commit)
	assert.Equal(t, "yesterday", Date)
}
