// Package compressor runs the build flow: it resolves the folder selection,
// writes the fixed-named container into the working directory and clears the
// persisted selection after a successful run.
package compressor
