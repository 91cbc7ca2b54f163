// Package selection contains the ordered folder list a container is built from.
//
// Selection is a value: Add, Toggle, RemoveAt and Clear return a new
// Selection and never modify the receiver. Duplicates are allowed.
package selection
