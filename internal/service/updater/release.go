package updater

import (
	"errors"
	"strings"
)

// ErrNoAssets is returned when a release carries no downloadable asset.
var ErrNoAssets = errors.New("release has no downloadable assets")

// Release is the subset of the latest-release metadata used by the updater.
type Release struct {
	// TagName is the published version tag.
	TagName string `json:"tag_name"`
	// Name is the human-readable release title.
	Name string `json:"name"`
	// HTMLURL is the release page.
	HTMLURL string `json:"html_url"`
	// Assets lists the uploaded files.
	Assets []Asset `json:"assets"`
}

// Asset is one uploaded release file.
type Asset struct {
	// Name is the uploaded file name.
	Name string `json:"name"`
	// BrowserDownloadURL is where the file is downloaded from.
	BrowserDownloadURL string `json:"browser_download_url"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// DownloadURL returns the URL of the first asset.
func (r *Release) DownloadURL() (string, error) {
	if r == nil || len(r.Assets) == 0 {
		return "", ErrNoAssets
	}

	url := strings.TrimSpace(r.Assets[0].BrowserDownloadURL)
	if url == "" {
		return "", ErrNoAssets
	}

	return url, nil
}

// IsNewer reports whether remote sorts after current.
// Tags are compared as strings: "0.9" is not newer than "1.0", and neither is "1.0" itself.
func IsNewer(remote, current string) bool {
	return strings.TrimSpace(remote) > strings.TrimSpace(current)
}
