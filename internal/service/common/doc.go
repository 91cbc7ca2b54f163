// Package common holds helpers shared by the meow services.
//
// It provides the run marker that keeps a single writer per working
// directory and the colored status reporter used for per-file progress lines.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
