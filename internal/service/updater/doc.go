// Package updater checks the release endpoint for a newer meow version.
//
// It fetches the latest-release metadata, compares the published tag with the
// current version as plain strings, asks the user, and saves the first release
// asset into the working directory. The asset is not verified.
package updater
