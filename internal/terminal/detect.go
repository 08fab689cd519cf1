// Package terminal reports what kind of output stream the tool is writing to.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

// EnvNoColor disables colored output when set to any value.
const EnvNoColor = "NO_COLOR"

type fdWriter interface {
	Fd() uintptr
}

var isTerminalFn = term.IsTerminal

// IsInteractive reports whether stdin and stdout are both interactive terminals.
func IsInteractive() bool {
	return isTerminalFn(int(os.Stdin.Fd())) && isTerminalFn(int(os.Stdout.Fd()))
}

// IsTerminal reports whether w writes to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isTerminalFn(int(f.Fd()))
}

// ColorEnabled reports whether colored output should be written to w.
func ColorEnabled(w io.Writer, getenv func(string) string) bool {
	if getenv != nil && getenv(EnvNoColor) != "" {
		return false
	}
	return IsTerminal(w)
}
