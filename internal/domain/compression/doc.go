// Package compression defines the compression settings of a container:
// a named level and a named ZIP method.
//
// The method picks stored or deflate for every entry of an archive. The level
// only tunes the deflate compressor; "normal" maps to the library default.
package compression
