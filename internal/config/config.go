package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/meow/internal/domain/compression"
	"github.com/oshokin/meow/internal/version"
)

// Config holds the settings shared by every meow command.
type Config struct {
	// OutputName is the fixed file name of the container written to the working directory.
	OutputName string `yaml:"output_name"`
	// SelectionFile is the path to the YAML file storing the folder selection.
	SelectionFile string `yaml:"selection_file"`
	// Compression holds the level and method names.
	Compression Compression `yaml:"compression"`
	// Update holds the release endpoint settings.
	Update Update `yaml:"update"`
}

// Compression holds the user-selected compression flags.
type Compression struct {
	// Level is one of compression.Levels.
	Level string `yaml:"level"`
	// Method is one of compression.Methods.
	Method string `yaml:"method"`
}

// Update configures the update checker.
type Update struct {
	// ReleaseURL is the latest-release metadata endpoint.
	ReleaseURL string `yaml:"release_url"`
	// AssetName is the file name the downloaded asset is saved under.
	AssetName string `yaml:"asset_name"`
	// CurrentVersion is compared with the remote tag. Defaults to the build version.
	CurrentVersion string `yaml:"current_version,omitempty"`
	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "meow-settings.yaml"

	// DefaultSelectionFilename is the default filename for the folder selection.
	DefaultSelectionFilename = "meow-selection.yaml"

	// DefaultOutputName is the container written by the compress command.
	DefaultOutputName = "compressed.meow"

	// ContainerExtension is the extension used by meow containers.
	ContainerExtension = ".meow"

	// DefaultReleaseURL points at the latest published release.
	DefaultReleaseURL = "https://api.github.com/repos/6306/MEOW/releases/latest"

	// DefaultAssetName is the file the update asset is saved to.
	DefaultAssetName = "MEOW_Update.zip"

	// DefaultFilePermissions is the default file permission for settings and selection files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidFileName is returned when a fixed file name contains a directory part.
	errInvalidFileName = errors.New("file name must not contain path separators")
	// errNegativeTimeout is returned for a negative update timeout.
	errNegativeTimeout = errors.New("update timeout must not be negative")
	// errReleaseURLNotAbsolute is returned when the release URL has no scheme or host.
	errReleaseURLNotAbsolute = errors.New("release URL must be absolute")
)

// Default returns settings populated with defaults.
func Default() *Config {
	cfg := new(Config)

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	// The build's own version is implied, so it is not pinned in the file.
	stored := *cfg
	if stored.Update.CurrentVersion == version.Short() {
		stored.Update.CurrentVersion = ""
	}

	data, err := yaml.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults, canonicalises the compression names and checks formatting.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.OutputName == "" {
		settings.OutputName = DefaultOutputName
	}

	if settings.SelectionFile == "" {
		settings.SelectionFile = DefaultSelectionFilename
	}

	if err := validateFileName(settings.OutputName); err != nil {
		return fmt.Errorf("output name: %w", err)
	}

	level, err := compression.ParseLevel(settings.Compression.Level)
	if err != nil {
		return fmt.Errorf("invalid compression level: %w", err)
	}

	method, err := compression.ParseMethod(settings.Compression.Method)
	if err != nil {
		return fmt.Errorf("invalid compression method: %w", err)
	}

	settings.Compression.Level = string(level)
	settings.Compression.Method = string(method)

	return validateUpdate(&settings.Update)
}

// validateUpdate fills and checks the update section.
func validateUpdate(update *Update) error {
	if update.ReleaseURL == "" {
		update.ReleaseURL = DefaultReleaseURL
	}

	if update.AssetName == "" {
		update.AssetName = DefaultAssetName
	}

	if update.CurrentVersion == "" {
		update.CurrentVersion = version.Short()
	}

	if update.Timeout < 0 {
		return errNegativeTimeout
	}

	if err := validateFileName(update.AssetName); err != nil {
		return fmt.Errorf("asset name: %w", err)
	}

	parsed, err := url.ParseRequestURI(update.ReleaseURL)
	if err != nil {
		return fmt.Errorf("invalid release URL: %w", err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s: %w", update.ReleaseURL, errReleaseURLNotAbsolute)
	}

	return nil
}

// validateFileName rejects names that would leave the working directory.
func validateFileName(name string) error {
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%q: %w", name, errInvalidFileName)
	}

	return nil
}
