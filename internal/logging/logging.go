// Package logging writes leveled diagnostic lines to stderr, or to the systemd
// journal when stderr is attached to it.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/fatih/color"

	"github.com/conn-castle/nixos-needsreboot/internal/terminal"
)

// Level orders log lines by severity.
type Level int

const (
	// LevelDebug lines are written only with Options.Verbose.
	LevelDebug Level = iota
	// LevelInfo reports a decision, such as a reboot being needed.
	LevelInfo
	// LevelError reports a failed run.
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	default:
		return "ERROR"
	}
}

func (l Level) priority() journal.Priority {
	switch l {
	case LevelDebug:
		return journal.PriDebug
	case LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriErr
	}
}

// Field is a key/value pair attached to a log line.
type Field struct {
	Key   string
	Value string
}

// F builds a Field.
func F(key string, value string) Field {
	return Field{Key: key, Value: value}
}

// Options controls where and how lines are written.
type Options struct {
	// Verbose enables debug lines.
	Verbose bool
	// Color enables ANSI colors on the text output.
	Color bool
	// Journal sends lines to the systemd journal instead of the writer.
	Journal bool
}

// Logger writes leveled lines. The zero value is not usable; use New or Discard.
type Logger struct {
	out     io.Writer
	opts    Options
	colors  map[Level]*color.Color
	sendFn  func(message string, priority journal.Priority, vars map[string]string) error
	verbose bool
}

// journalStream is a seam for tests.
var journalStream = journal.StderrIsJournalStream

// DetectOptions picks Color and Journal for a logger writing to stderr.
func DetectOptions(stderr io.Writer, verbose bool) Options {
	opts := Options{Verbose: verbose}
	if stderr == os.Stderr {
		if ok, err := journalStream(); err == nil && ok {
			opts.Journal = true
			return opts
		}
	}
	opts.Color = terminal.ColorEnabled(stderr, os.Getenv)
	return opts
}

// New returns a Logger writing to out.
func New(out io.Writer, opts Options) *Logger {
	if out == nil {
		out = io.Discard
	}
	colors := map[Level]*color.Color{
		LevelDebug: color.New(color.Faint),
		LevelInfo:  color.New(color.FgCyan),
		LevelError: color.New(color.FgRed),
	}
	for _, c := range colors {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &Logger{
		out:     out,
		opts:    opts,
		colors:  colors,
		sendFn:  journal.Send,
		verbose: opts.Verbose,
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, Options{})
}

// Debug logs msg when verbose output is enabled.
func (l *Logger) Debug(msg string, fields ...Field) {
	if !l.verbose {
		return
	}
	l.log(LevelDebug, msg, fields)
}

// Info logs msg.
func (l *Logger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields)
}

// Error logs msg.
func (l *Logger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields)
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if l.opts.Journal {
		vars := make(map[string]string, len(fields))
		for _, f := range fields {
			vars[journalKey(f.Key)] = f.Value
		}
		if err := l.sendFn(msg, level.priority(), vars); err == nil {
			return
		}
		// journal socket went away; fall back to the writer
	}
	var line strings.Builder
	line.WriteString(level.String())
	line.WriteString(": ")
	line.WriteString(msg)
	for _, f := range fields {
		_, _ = fmt.Fprintf(&line, " %s=%q", f.Key, f.Value)
	}
	_, _ = l.colors[level].Fprintln(l.out, line.String())
}

// journalKey upper-cases key and replaces characters journald rejects.
func journalKey(key string) string {
	upper := strings.ToUpper(key)
	return strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, upper)
}
