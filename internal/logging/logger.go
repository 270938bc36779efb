// =============================================================================
// Cart Parser - Logging
// =============================================================================
//
// This module builds the application logger. Every component logs through the
// Logger interface, which *slog.Logger satisfies, so components never depend
// on a concrete handler.
//
// OUTPUT:
//   - Text records on stderr
//   - Optionally the same records appended to the configured log file
//
// =============================================================================

package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

// Logger is the logging interface used by the pipeline components.
// Arguments after msg are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a config level name to a slog level. Unknown names map to
// info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger writing to stderr and, when logFile is set, to that
// file as well. The returned closer releases the log file and must be called
// on shutdown.
func New(level, logFile string) (*slog.Logger, io.Closer, error) {
	return newLogger(os.Stderr, level, logFile)
}

func newLogger(out io.Writer, level, logFile string) (*slog.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, nil, errors.Wrap(err, "create log directory")
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		out = io.MultiWriter(out, file)
		closer = file
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
