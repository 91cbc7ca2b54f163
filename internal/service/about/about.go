package about

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"runtime"
	"strings"

	"github.com/oshokin/meow/internal/version"
)

const (
	// SupportEmail is the support contact.
	SupportEmail = "support@skylarclark.xyz"
	// IssueHint points users at the issue tracker.
	IssueHint = "I suggest that you make an issue on the GitHub page."

	unknownOS = " (Unknown, probably some rad OS I've never heard of before.)"
)

// Info is what the about command prints.
type Info struct {
	// Version is the running release tag.
	Version string
	// OperatingSystem describes the host OS and, when known, its release.
	OperatingSystem string
	// Hostname is the machine name.
	Hostname string
	// Username is the current system user.
	Username string
}

// environment abstracts the host queries so they can be replaced in tests.
type environment struct {
	goos     string
	readFile func(string) ([]byte, error)
	command  func(name string, args ...string) ([]byte, error)
}

// Collect gathers the about information for this host.
// Hostname and user lookups are best-effort.
func Collect() *Info {
	info := &Info{
		Version:         version.Short(),
		OperatingSystem: describeOS(hostEnvironment()),
	}

	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	}

	if current, err := user.Current(); err == nil {
		info.Username = current.Username
	}

	return info
}

// String renders the info in the layout of the about window.
func (i *Info) String() string {
	var builder strings.Builder

	builder.WriteString("MEOW Version: ")
	builder.WriteString(i.Version)
	builder.WriteString("\nOperating System: ")
	builder.WriteString(i.OperatingSystem)

	if i.Hostname != "" || i.Username != "" {
		fmt.Fprintf(&builder, "\nHost: %s, User: %s", i.Hostname, i.Username)
	}

	builder.WriteString("\nSupport Email: ")
	builder.WriteString(SupportEmail)
	builder.WriteString("\n")
	builder.WriteString(IssueHint)

	return builder.String()
}

func hostEnvironment() environment {
	return environment{
		goos:     runtime.GOOS,
		readFile: os.ReadFile,
		command: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output() //nolint:gosec,noctx // Fixed, local commands.
		},
	}
}

// describeOS names the operating system and appends its release when it can be found.
func describeOS(env environment) string {
	switch env.goos {
	case "windows":
		return withRelease("Windows", commandRelease(env, "cmd", "/c", "ver"))
	case "darwin":
		return withRelease("Darwin", commandRelease(env, "sw_vers", "-productVersion"))
	case "linux":
		data, err := env.readFile("/etc/os-release")
		if err != nil {
			return "Linux"
		}

		return withRelease("Linux", parseOSRelease(data))
	default:
		return env.goos + unknownOS
	}
}

func withRelease(name, release string) string {
	if release == "" {
		return name
	}

	return name + " " + release
}

func commandRelease(env environment, name string, args ...string) string {
	output, err := env.command(name, args...)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(output))
}

// parseOSRelease returns "NAME VERSION_ID" from an os-release file.
func parseOSRelease(data []byte) string {
	fields := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, found := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !found || strings.HasPrefix(key, "#") {
			continue
		}

		fields[key] = strings.Trim(value, `"'`)
	}

	return strings.TrimSpace(fields["NAME"] + " " + fields["VERSION_ID"])
}
