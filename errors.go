package mommy

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Exit codes the tool produces on its own account. Every other exit code is
// the wrapped command's.
const (
	ExitUsage     = 1
	ExitRecursion = 2
)

var (
	// ErrMissingExitCode is returned in needy mode when the argument is not a
	// base-10 integer.
	ErrMissingExitCode = errors.New("expected an exit code")

	// ErrEmptyCommand is returned when nothing is left to run after the
	// arguments have been filtered.
	ErrEmptyCommand = errors.New("no command given")

	// ErrExitCodeRange is returned in needy mode when the exit code cannot
	// be passed through unchanged.
	ErrExitCodeRange = errors.New("exit code must be between 0 and 255")

	// ErrExtraArguments is returned in needy mode when more than the exit
	// code is given.
	ErrExtraArguments = errors.New("expected a single exit code")
)

// UsageError reports invocation arguments the tool cannot act on.
type UsageError struct {
	Usage string
	Err   error
}

func (e *UsageError) Error() string {
	if e.Err == nil {
		return "usage: " + e.Usage
	}
	return fmt.Sprintf("%v\nusage: %s", e.Err, e.Usage)
}

func (e *UsageError) Unwrap() error { return e.Err }

// diagStyle is red and bold, with color support detected from w.
func diagStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
}

// diag prints one of the tool's own messages to w. When w is a terminal the
// message is rendered red and bold.
func diag(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		msg = diagStyle(w).Render(msg)
	}
	_, _ = fmt.Fprintln(w, msg)
}
