// Package config defines the meow settings file and helpers to load,
// validate and save it in YAML format.
//
// Settings cover the container output name, the compression level and
// method, the selection file, and the release endpoint used by the updater.
package config
