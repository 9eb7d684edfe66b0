// Package diag centralizes the emulator's diagnostic output: CPU and
// memory trace lines, loader messages, and APEX diagnostics all flow
// through one writer so tests can swap it out and so the cpu and apex
// packages never reach for os.Stderr directly. The runner prints halt
// messages and run statistics to os.Stderr itself.
package diag

import (
	"io"
	"log"
)

// Logger wraps the standard library's log.Logger with the small set of
// call shapes the emulator actually uses. No third-party structured
// logger appears anywhere in the retrieved reference corpus for this
// domain, so this stays a thin stdlib wrapper rather than reaching for
// one.
type Logger struct {
	l *log.Logger
}

// New creates a Logger that writes to w with no timestamp prefix, matching
// the plain "wrote addr ... " / "apex halt" style of line the reference
// implementation emits.
func New(w io.Writer) *Logger {
	return &Logger{l: log.New(w, "", 0)}
}

// Discard returns a Logger whose output is dropped, for tests that don't
// care about trace/diagnostic text.
func Discard() *Logger {
	return New(io.Discard)
}

// Tracef emits a trace line unconditionally; callers are responsible for
// checking whether tracing is enabled before calling it.
func (d *Logger) Tracef(format string, args ...any) {
	if d == nil {
		return
	}
	d.l.Printf(format, args...)
}

// Printf emits a diagnostic line.
func (d *Logger) Printf(format string, args ...any) {
	if d == nil {
		return
	}
	d.l.Printf(format, args...)
}

// Println emits a diagnostic line.
func (d *Logger) Println(args ...any) {
	if d == nil {
		return
	}
	d.l.Println(args...)
}
