package compiler

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const logPrefix = "[flexgen] "

// Logger traces how a pattern is parsed and how its automaton grows. Every
// line carries logPrefix so traces of several patterns can be interleaved
// on one writer. A nil *Logger logs nothing.
type Logger struct {
	enabled bool
	out     io.Writer
}

// NewLogger returns a logger writing to stderr when enabled.
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
	}
}

// NewLoggerTo returns an enabled logger writing to w.
func NewLoggerTo(w io.Writer) *Logger {
	return &Logger{enabled: true, out: w}
}

// SetOutput redirects the logger to w.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Log writes one formatted line.
func (l *Logger) Log(format string, args ...any) {
	if l.Enabled() {
		fmt.Fprintf(l.out, logPrefix+format+"\n", args...)
	}
}

// Section starts a named block of the trace.
func (l *Logger) Section(name string) {
	if l.Enabled() {
		fmt.Fprintf(l.out, "\n%s=== %s ===\n", logPrefix, name)
	}
}

// Dump starts a section and writes text under it line by line, such as an
// automaton listing.
func (l *Logger) Dump(title, text string) {
	if !l.Enabled() {
		return
	}
	l.Section(title)
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		fmt.Fprintf(l.out, "%s%s\n", logPrefix, line)
	}
}

// Enabled reports whether anything is written.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}
