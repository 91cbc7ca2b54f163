package version

import "fmt"

var (
	// Version is the release tag of the build. The update checker compares it
	// with the latest published tag. It can be overridden via ldflags.
	Version = "1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the release tag.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("meow version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}
