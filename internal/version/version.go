// Package version holds the statusboard build information, set via ldflags:
//
//	-ldflags "-X github.com/ariel-frischer/statusboard/internal/version.Version=v1.0.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// ShortCommit returns the first seven characters of Commit.
func ShortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// String is the one-line version used by --version and the version command.
func String() string {
	return fmt.Sprintf("statusboard %s (%s, built %s, %s %s/%s)",
		Version, ShortCommit(), BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
