//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter prints the user-facing status line of an operation.
type Reporter struct {
	out    io.Writer
	status *color.Color
	done   *color.Color
	warn   *color.Color
}

// NewReporter creates a reporter writing to out, or to stdout when out is nil.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}

	return &Reporter{
		out:    out,
		status: color.New(color.FgCyan),
		done:   color.New(color.FgGreen, color.Bold),
		warn:   color.New(color.FgYellow),
	}
}

// Writer returns the underlying output.
func (r *Reporter) Writer() io.Writer {
	return r.out
}

// Status prints an in-progress line.
func (r *Reporter) Status(format string, args ...any) {
	_, _ = r.status.Fprintf(r.out, format+"\n", args...)
}

// Done prints a completion line.
func (r *Reporter) Done(format string, args ...any) {
	_, _ = r.done.Fprintf(r.out, format+"\n", args...)
}

// Warn prints a warning line.
func (r *Reporter) Warn(format string, args ...any) {
	_, _ = r.warn.Fprintf(r.out, format+"\n", args...)
}
