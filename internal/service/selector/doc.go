// Package selector edits the persisted folder selection.
//
// It mirrors the folder list of the original desktop window: folders are
// added one by one, a second pick of the same folder toggles it off, and a
// successful build clears the list.
package selector
