package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InputDir != "./input" || cfg.OutputDir != "./output" {
		t.Fatalf("unexpected directories: %+v", cfg)
	}
	if cfg.OutputFormat != FormatJSON || cfg.MaxConcurrency != 4 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.ShouldContinueOnError() || !cfg.ShouldArchive() {
		t.Fatalf("expected boolean defaults to be true")
	}
	if cfg.WatchDebounce != 500*time.Millisecond {
		t.Fatalf("unexpected debounce %v", cfg.WatchDebounce)
	}
	if err := validateMainConfig(cfg); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestLoadMainConfig(t *testing.T) {
	path := writeConfig(t, `
input_dir: ./carts
output_format: xml
max_concurrency: 2
continue_on_error: false
archive_on_success: false
watch_debounce: 2s
log_level: debug
`)

	cfg, err := LoadMainConfig(path)
	if err != nil {
		t.Fatalf("LoadMainConfig returned error: %v", err)
	}
	if cfg.InputDir != "./carts" || cfg.OutputDir != "./output" {
		t.Fatalf("unexpected directories: %+v", cfg)
	}
	if cfg.OutputFormat != FormatXML || cfg.MaxConcurrency != 2 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected values: %+v", cfg)
	}
	if cfg.ShouldContinueOnError() || cfg.ShouldArchive() {
		t.Fatalf("expected explicit false values to be kept")
	}
	if cfg.WatchDebounce != 2*time.Second {
		t.Fatalf("unexpected debounce %v", cfg.WatchDebounce)
	}
}

func TestLoadMainConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "format", content: "output_format: pdf\n"},
		{name: "level", content: "log_level: loud\n"},
		{name: "concurrency", content: "max_concurrency: -1\n"},
		{name: "yaml", content: "input_dir: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadMainConfig(writeConfig(t, tt.content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault returned error: %v", err)
	}
	if cfg.OutputFormat != FormatJSON {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := &MainConfig{
		InputDir:         filepath.Join(root, "in"),
		OutputDir:        filepath.Join(root, "out"),
		InputArchiveDir:  filepath.Join(root, "in_archive"),
		OutputArchiveDir: filepath.Join(root, "out_archive"),
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s", dir)
		}
	}
}
