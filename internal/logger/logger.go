// Package logger holds the process-wide zerolog logger
//
// The terminal belongs to the TUI, so by default records go to a JSON file
// under the ayp home. Commands running with --verbose log to stderr instead
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures Init
type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else is info
	Level string
	// Pretty renders records with zerolog's console writer
	Pretty bool
	// Output receives the records. Nil discards them
	Output io.Writer
}

var (
	mu       sync.Mutex
	instance = zerolog.Nop()
	file     *os.File
)

// Init replaces the process logger and returns it
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	instance = zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
	return instance
}

// InitFile opens (appending) the log file at path and logs to it.
// Call Close before exit
func InitFile(path, level string) (zerolog.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to open log file: %w", err)
	}

	l := Init(Options{Level: level, Output: f})

	mu.Lock()
	if file != nil {
		_ = file.Close()
	}
	file = f
	mu.Unlock()

	return l, nil
}

// Get returns the current logger; a no-op logger before Init
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return instance
}

// Close flushes and closes the log file opened by InitFile, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	instance = zerolog.Nop()
	return err
}

// Reset drops the current logger. Tests only
func Reset() {
	_ = Close()
	mu.Lock()
	instance = zerolog.Nop()
	mu.Unlock()
}

// ParseLevel maps a level name to zerolog, falling back to info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
