package updater

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// errNotTerminal is returned when an interactive answer is required but stdin is not a terminal.
var errNotTerminal = errors.New("stdin is not a terminal, rerun with --yes to accept the update")

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// TerminalPrompter asks on an interactive terminal.
type TerminalPrompter struct {
	in  *os.File
	out io.Writer
}

// NewTerminalPrompter creates a prompter reading answers from in and writing questions to out.
func NewTerminalPrompter(in *os.File, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: in, out: out}
}

// Confirm prints the question with a [y/N] suffix and reads one line.
func (p *TerminalPrompter) Confirm(_ context.Context, question string) (bool, error) {
	if !term.IsTerminal(int(p.in.Fd())) { //nolint:gosec // File descriptors fit into int.
		return false, errNotTerminal
	}

	if _, err := fmt.Fprintf(p.out, "%s [y/N]: ", question); err != nil {
		return false, err
	}

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	return isYes(line), nil
}

// StaticPrompter answers every question with Answer and records the questions asked.
type StaticPrompter struct {
	// Answer is returned for every question.
	Answer bool
	// Asked collects the questions in order.
	Asked []string
}

// Confirm records the question and returns Answer.
func (p *StaticPrompter) Confirm(_ context.Context, question string) (bool, error) {
	p.Asked = append(p.Asked, question)

	return p.Answer, nil
}

// isYes accepts "y" and "yes" in any case.
func isYes(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
