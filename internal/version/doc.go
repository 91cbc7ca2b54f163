// Package version exposes build metadata for meow.
//
// Version doubles as the "current version" the update checker compares
// against the latest release tag. Commit and BuildTime are injected via ldflags.
package version
