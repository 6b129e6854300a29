package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

var (
	verbose atomic.Bool
	output  io.Writer = os.Stderr
)

// SetVerbose forces debug output on regardless of TASKU_DEBUG.
// It is driven by the application.verbose configuration flag.
func SetVerbose(enabled bool) {
	verbose.Store(enabled)
}

// SetOutput redirects debug output. Intended for tests.
func SetOutput(w io.Writer) {
	output = w
}

// DebugEnabled returns true if debug mode is enabled via TASKU_DEBUG or SetVerbose
func DebugEnabled() bool {
	return verbose.Load() || os.Getenv("TASKU_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(output, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(output, args...)
	}
}
