// Package version reports the build identity of the locradar binary.
package version

import (
	"runtime/debug"
)

// Set with -ldflags "-X github.com/Sumatoshi-tech/locradar/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// InitBinaryVersion fills Version, Commit and Date from the embedded module
// build info when they were not set at link time.
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

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "unknown" {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// String formats the version line printed by "locradar version".
func String() string {
	return "locradar " + Version + " (commit: " + Commit + ", built: " + Date + ")"
}
