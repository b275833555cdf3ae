// Package logger provides leveled logging for the crhp CLI and services.
// Warnings and errors are always written; debug and info lines only when
// verbose mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Fields are structured key-value pairs attached to a log line.
type Fields map[string]any

// Entry is a log line builder carrying fields.
type Entry interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

const template = "[{{level}}] {{message}} {{data}}\n"

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	log               = build(os.Stderr, false)
)

// build creates a gookit/slog logger writing to w.
func build(w io.Writer, v bool) *slog.Logger {
	max := slog.WarnLevel
	if v {
		max = slog.DebugLevel
	}

	var levels []slog.Level
	for _, lv := range slog.AllLevels {
		if lv <= max {
			levels = append(levels, lv)
		}
	}

	h := handler.NewIOWriterHandler(w, levels)
	formatter := slog.NewTextFormatter(template)
	formatter.EnableColor = false
	h.SetFormatter(formatter)

	return slog.NewWithHandlers(h)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = build(output, verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = build(output, verbose)
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debugf(format, args...)
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Infof(format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warnf(format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Errorf(format, args...)
}

// With returns an entry that attaches fields to the next line.
func With(fields Fields) Entry {
	mu.RLock()
	defer mu.RUnlock()
	return log.WithFields(slog.M(fields))
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
