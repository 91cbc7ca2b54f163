package updater

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"
	"github.com/dustin/go-humanize"

	"github.com/oshokin/meow/internal/config"
	"github.com/oshokin/meow/internal/logger"
	"github.com/oshokin/meow/internal/service/common"
)

// UpdateQuestion is asked before the asset is downloaded.
const UpdateQuestion = "New update available. Would you like to download it?"

// assetFileMode is the permission of the saved update asset.
const assetFileMode os.FileMode = 0o644

var (
	// ErrBadHTTPStatus is returned for any non-200 response.
	ErrBadHTTPStatus = errors.New("unexpected http status")
	// errNoPrompter is returned when an update is found but nobody can be asked.
	errNoPrompter = errors.New("no prompter configured")
)

// Options are inputs accepted by the updater entry point.
type Options struct {
	// ConfigPath is the optional path to the settings file.
	ConfigPath string
	// Prompter confirms the download. Required when an update is available.
	Prompter Prompter
	// HTTPClient overrides the client built from the settings.
	HTTPClient *http.Client
	// Out receives the status lines. Defaults to stdout.
	Out io.Writer
}

// CheckResult is the outcome of a release check.
type CheckResult struct {
	// Current is the local version.
	Current string
	// Latest is the published tag.
	Latest string
	// UpdateAvailable reports whether Latest sorts after Current.
	UpdateAvailable bool
	// Release is the parsed metadata.
	Release *Release
}

// Checker talks to the release endpoint.
type Checker struct {
	// client performs both requests.
	client *http.Client
	// releaseURL is the latest-release metadata endpoint.
	releaseURL string
	// current is the version compared with the remote tag.
	current string
}

// NewChecker creates a checker for the update settings.
// A nil client gets one bounded by settings.Timeout (zero means no timeout).
func NewChecker(settings *config.Update, client *http.Client) *Checker {
	if client == nil {
		client = &http.Client{Timeout: settings.Timeout}
	}

	return &Checker{
		client:     client,
		releaseURL: settings.ReleaseURL,
		current:    settings.CurrentVersion,
	}
}

// Check fetches the latest-release metadata and compares its tag with the current version.
func (c *Checker) Check(ctx context.Context) (*CheckResult, error) {
	response, err := c.get(ctx, c.releaseURL, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	var release Release
	if err = json.NewDecoder(response.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release metadata: %w", err)
	}

	return &CheckResult{
		Current:         c.current,
		Latest:          release.TagName,
		UpdateAvailable: IsNewer(release.TagName, c.current),
		Release:         &release,
	}, nil
}

// Download fetches the first asset of release and saves it to targetPath, replacing any existing file.
// It returns the number of bytes saved.
func (c *Checker) Download(ctx context.Context, release *Release, targetPath string) (int64, error) {
	downloadURL, err := release.DownloadURL()
	if err != nil {
		return 0, err
	}

	response, err := c.get(ctx, downloadURL, "application/octet-stream")
	if err != nil {
		return 0, err
	}

	defer func() {
		_ = response.Body.Close()
	}()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, fmt.Errorf("read asset: %w", err)
	}

	if err = replaceFile(targetPath, data); err != nil {
		return 0, err
	}

	return int64(len(data)), nil
}

// get issues a GET request and fails on any status other than 200.
func (c *Checker) get(ctx context.Context, rawURL, accept string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	request.Header.Set("Accept", accept)

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}

	if response.StatusCode != http.StatusOK {
		_ = response.Body.Close()

		return nil, fmt.Errorf("%s, %s: %w", rawURL, response.Status, ErrBadHTTPStatus)
	}

	return response, nil
}

// replaceFile swaps the contents of path for data with go-update, creating path if needed.
func replaceFile(path string, data []byte) error {
	path = filepath.Clean(path)

	// go-update renames the existing target aside, so one has to exist.
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		placeholder, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("create %s: %w", path, createErr)
		}

		_ = placeholder.Close()
	}

	options := goupdate.Options{
		TargetPath: path,
		TargetMode: assetFileMode,
	}

	if err := goupdate.Apply(bytes.NewReader(data), options); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}

// Run checks for an update, asks the prompter and downloads the asset on acceptance.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "meow-updater")
	reporter := common.NewReporter(opts.Out)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	checker := NewChecker(&cfg.Update, opts.HTTPClient)

	logger.InfoKV(ctx, "Checking for updates", "url", cfg.Update.ReleaseURL, "current", cfg.Update.CurrentVersion)

	result, err := checker.Check(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Update check failed", "error", err)
		reporter.Warn("Failed to check for updates. Please try again later.")

		return err
	}

	if !result.UpdateAvailable {
		logger.InfoKV(ctx, "No update available", "current", result.Current, "latest", result.Latest)
		reporter.Done("MEOW %s is up to date.", result.Current)

		return nil
	}

	logger.InfoKV(ctx, "Update available", "current", result.Current, "latest", result.Latest)

	if opts.Prompter == nil {
		return errNoPrompter
	}

	accepted, err := opts.Prompter.Confirm(ctx, UpdateQuestion)
	if err != nil {
		return fmt.Errorf("confirm update: %w", err)
	}

	if !accepted {
		logger.Info(ctx, "Update declined")

		return nil
	}

	return download(ctx, checker, result.Release, cfg.Update.AssetName, reporter)
}

// download saves the release asset into the working directory under assetName.
func download(
	ctx context.Context,
	checker *Checker,
	release *Release,
	assetName string,
	reporter *common.Reporter,
) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}

	marker, err := common.AcquireMarker(ctx, workDir)
	if err != nil {
		return err
	}

	defer marker.Release(ctx)

	target := filepath.Join(workDir, assetName)

	size, err := checker.Download(ctx, release, target)
	if err != nil {
		logger.ErrorKV(ctx, "Update download failed", "error", err)

		return fmt.Errorf("download update: %w", err)
	}

	logger.InfoKV(ctx, "Update downloaded", "path", target, "size", humanize.Bytes(uint64(size))) //nolint:gosec // Never negative.
	reporter.Done("Update downloaded successfully.")

	return nil
}
