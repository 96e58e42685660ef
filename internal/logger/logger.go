// Package logger provides the shared zerolog logger for the arbor CLI.
// Output goes to stderr so stdout stays reserved for command results
// (in particular the cd signal consumed by the shell wrapper).
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance. Before Init it discards everything.
var Log = zerolog.Nop()

// Init configures the global logger. Verbose enables debug-level output;
// otherwise only warnings and errors are shown.
func Init(verbose bool) {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	Log = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return Log.Debug()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return Log.Warn()
}
