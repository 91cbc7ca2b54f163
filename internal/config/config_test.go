package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/meow/internal/domain/compression"
	"github.com/oshokin/meow/internal/version"
)

// TestValidate_FillsDefaults checks that an empty config receives every default.
func TestValidate_FillsDefaults(t *testing.T) {
	t.Parallel()

	settings := new(Config)
	require.NoError(t, Validate(settings))

	require.Equal(t, DefaultOutputName, settings.OutputName)
	require.Equal(t, DefaultSelectionFilename, settings.SelectionFile)
	require.Equal(t, string(compression.LevelNormal), settings.Compression.Level)
	require.Equal(t, string(compression.MethodDeflated), settings.Compression.Method)
	require.Equal(t, DefaultReleaseURL, settings.Update.ReleaseURL)
	require.Equal(t, DefaultAssetName, settings.Update.AssetName)
	require.Equal(t, version.Short(), settings.Update.CurrentVersion)
	require.Zero(t, settings.Update.Timeout)
}

// TestValidate_Rejects covers the formatting checks.
func TestValidate_Rejects(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	cases := map[string]*Config{
		"output with directory": {OutputName: "../compressed.meow"},
		"unknown level":         {Compression: Compression{Level: "ultra"}},
		"unknown method":        {Compression: Compression{Method: "ZIP_LZMA"}},
		"relative release url":  {Update: Update{ReleaseURL: "releases/latest"}},
		"asset with directory":  {Update: Update{AssetName: "dir/MEOW_Update.zip"}},
		"negative timeout":      {Update: Update{Timeout: -time.Second}},
	}
	for name, settings := range cases {
		require.Error(t, Validate(settings), name)
	}
}

// TestValidate_CanonicalisesCompression ensures lower-case method names become canonical.
func TestValidate_CanonicalisesCompression(t *testing.T) {
	t.Parallel()

	settings := &Config{Compression: Compression{Level: "BEST", Method: "stored"}}
	require.NoError(t, Validate(settings))
	require.Equal(t, "best", settings.Compression.Level)
	require.Equal(t, "ZIP_STORED", settings.Compression.Method)
}

// TestLoad_MissingFileYieldsDefaults ensures a fresh working directory needs no settings file.
func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		OutputName:  "backup.meow",
		Compression: Compression{Level: "fastest", Method: "ZIP_STORED"},
		Update: Update{
			ReleaseURL:     "https://updates.local/releases/latest",
			CurrentVersion: "0.5",
			Timeout:        3 * time.Second,
		},
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.False(t, info.IsDir())
}

// TestLoad_InvalidYAML reports unmarshal errors.
func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("compression: [oops"), DefaultFilePermissions))

	_, err := Load(path)
	require.Error(t, err)
}
