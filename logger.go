package nirc

import (
	"fmt"
	"log"
	"os"
)

// Logger is a thin wrapper around the standard library logger that tags
// every line with the subsystem it came from (NET, DISPATCH, COG, DCC,
// TASK, CORE, ERROR) and can be silenced independently of log.SetOutput.
//
// Debug output is off by default; set the NIRC_DEBUG environment variable
// to enable it, or construct a Logger directly with NewLogger(true).
type Logger struct {
	enabled bool
	std     *log.Logger
}

// NewLogger returns a Logger that writes to stderr when enabled is true
// and discards everything otherwise.
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		std:     log.New(os.Stderr, "", log.LstdFlags),
	}
}

// NewLoggerFromEnv returns a Logger whose enabled state is taken from the
// NIRC_DEBUG environment variable (any non-empty value enables it).
func NewLoggerFromEnv() *Logger {
	return NewLogger(os.Getenv("NIRC_DEBUG") != "")
}

// Printf logs a formatted line tagged with channel, e.g. "NET", "DCC".
// A nil Logger is valid and logs nothing, so callers never need a guard.
func (l *Logger) Printf(channel, format string, args ...interface{}) {
	if l == nil || !l.enabled {
		return
	}
	l.std.Printf("[%s] %s", channel, fmt.Sprintf(format, args...))
}

// Print logs an unformatted line tagged with channel.
func (l *Logger) Print(channel, msg string) {
	if l == nil || !l.enabled {
		return
	}
	l.std.Printf("[%s] %s", channel, msg)
}
