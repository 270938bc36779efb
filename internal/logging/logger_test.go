package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := newLogger(&buf, "warn", "")
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "file", "cart.csv")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "file=cart.csv") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestNewLoggerWritesLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "cartparser.log")

	var buf bytes.Buffer
	logger, closer, err := newLogger(&buf, "info", logFile)
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}
	logger.Info("processed cart", "items", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "processed cart") {
		t.Fatalf("log file missing record: %q", data)
	}
}
