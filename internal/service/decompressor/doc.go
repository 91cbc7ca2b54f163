// Package decompressor runs the extract flow for a meow container.
package decompressor
