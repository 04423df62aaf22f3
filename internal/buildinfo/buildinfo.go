// Package buildinfo reports the version stamped into the binary.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for window titles and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		if len(c) > 12 {
			c = c[:12]
		}
		return c
	}
	return "dev"
}

// String is the full version line printed by -version.
func String() string {
	return fmt.Sprintf("fbscene %s (commit %s, built %s)", Version, orUnknown(commit()), Date)
}

// commit prefers the -ldflags value and falls back to the VCS revision the
// Go toolchain records.
func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
