package about

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/meow/internal/version"
)

var errNoCommand = errors.New("command not available")

// TestParseOSRelease extracts the distribution name and version.
func TestParseOSRelease(t *testing.T) {
	t.Parallel()

	data := []byte(`# comment
NAME="Ubuntu"
VERSION="24.04 LTS (Noble Numbat)"
ID=ubuntu
VERSION_ID="24.04"
`)

	require.Equal(t, "Ubuntu 24.04", parseOSRelease(data))
	require.Empty(t, parseOSRelease(nil))
}

// TestDescribeOS covers each branch with fake host queries.
func TestDescribeOS(t *testing.T) {
	t.Parallel()

	release := func(string) ([]byte, error) { return []byte("NAME=Debian\nVERSION_ID=12\n"), nil }
	missing := func(string) ([]byte, error) { return nil, os.ErrNotExist }
	swVers := func(string, ...string) ([]byte, error) { return []byte("14.5\n"), nil }
	broken := func(string, ...string) ([]byte, error) { return nil, errNoCommand }

	require.Equal(t, "Linux Debian 12", describeOS(environment{goos: "linux", readFile: release}))
	require.Equal(t, "Linux", describeOS(environment{goos: "linux", readFile: missing}))
	require.Equal(t, "Darwin 14.5", describeOS(environment{goos: "darwin", command: swVers}))
	require.Equal(t, "Windows", describeOS(environment{goos: "windows", command: broken}))
	require.Contains(t, describeOS(environment{goos: "plan9"}), "rad OS")
}

// TestCollect fills the version and renders every line.
func TestCollect(t *testing.T) {
	t.Parallel()

	info := Collect()
	require.Equal(t, version.Short(), info.Version)
	require.NotEmpty(t, info.OperatingSystem)

	text := info.String()
	require.Contains(t, text, "MEOW Version: "+version.Short())
	require.Contains(t, text, "Support Email: "+SupportEmail)
	require.Contains(t, text, IssueHint)
}
