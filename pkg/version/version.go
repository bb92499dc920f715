// Package version carries build metadata injected with -ldflags -X.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at link time, e.g. -X github.com/Sumatoshi-tech/itree/pkg/version.Version=v0.3.0.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const shortCommitLen = 12

// InitBinaryVersion fills Version and Commit from the module build info when
// they were not set at link time (go install builds).
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	applyBuildInfo(info)
}

func applyBuildInfo(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = setting.Value[:min(len(setting.Value), shortCommitLen)]
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = setting.Value
			}
		}
	}
}

// String renders the one-line form printed by "itree version".
func String() string {
	return fmt.Sprintf("itree %s (commit: %s, built: %s)", Version, Commit, Date)
}
