// Package archive writes and reads meow containers.
//
// A container is a plain ZIP file with a renamed extension. Build walks the
// selected folders and stores every regular file under its path relative to
// the parent of the selected folder, so the folder name stays as a prefix.
// Extract validates every entry path before writing anything and rejects
// entries that would land outside the destination directory.
package archive
