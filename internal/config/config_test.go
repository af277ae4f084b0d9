package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points HOME at a temp dir and clears env overrides so the real
// user config never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("KEEPNOTES_DIR", "")
	t.Setenv("KEEPNOTES_BACKEND", "")
	t.Setenv("KEEPNOTES_DEBOUNCE_MS", "")
	t.Setenv("KEEPNOTES_FLUSH_ON_CLOSE", "")
	return home
}

func TestLoad_Default(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != filepath.Join(home, "keepnotes") {
		t.Errorf("expected default data dir under home, got %q", cfg.DataDir)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("expected backend %q, got %q", BackendFile, cfg.Backend)
	}
	if cfg.DebounceMS != DefaultDebounceMS {
		t.Errorf("expected debounce %d, got %d", DefaultDebounceMS, cfg.DebounceMS)
	}
	if cfg.FlushOnClose {
		t.Error("expected flush_on_close to default to false")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, ".config", "keepnotes")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `{"data_dir": "~/notes-from-file", "backend": "sqlite", "debounce_ms": 250, "flush_on_close": true}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != filepath.Join(home, "notes-from-file") {
		t.Errorf("expected expanded data dir, got %q", cfg.DataDir)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Backend)
	}
	if cfg.DebounceMS != 250 {
		t.Errorf("expected debounce 250, got %d", cfg.DebounceMS)
	}
	if !cfg.FlushOnClose {
		t.Error("expected flush_on_close from file")
	}
}

func TestLoad_EnvVar(t *testing.T) {
	isolate(t)
	t.Setenv("KEEPNOTES_DIR", "/tmp/env-notes")
	t.Setenv("KEEPNOTES_BACKEND", "SQLite")
	t.Setenv("KEEPNOTES_DEBOUNCE_MS", "100")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != "/tmp/env-notes" {
		t.Errorf("expected /tmp/env-notes, got %q", cfg.DataDir)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("expected backend to be normalized to sqlite, got %q", cfg.Backend)
	}
	if cfg.DebounceMS != 100 {
		t.Errorf("expected debounce 100, got %d", cfg.DebounceMS)
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolate(t)
	t.Setenv("KEEPNOTES_DIR", "/tmp/env-notes")

	cfg, err := Load(CLIFlags{DataDir: "/tmp/cli-notes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.DataDir != "/tmp/cli-notes" {
		t.Errorf("expected /tmp/cli-notes, got %q", cfg.DataDir)
	}
}

func TestLoad_Ephemeral(t *testing.T) {
	isolate(t)
	t.Setenv("KEEPNOTES_BACKEND", "sqlite")

	cfg, err := Load(CLIFlags{Ephemeral: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("expected memory backend, got %q", cfg.Backend)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	isolate(t)

	if _, err := Load(CLIFlags{Backend: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoad_InvalidDebounceIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("KEEPNOTES_DEBOUNCE_MS", "soon")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DebounceMS != DefaultDebounceMS {
		t.Errorf("expected default debounce, got %d", cfg.DebounceMS)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolate(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(home, ".config", "keepnotes", "config.json")
	settings, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("config file not readable: %v", err)
	}
	if settings.Backend != BackendFile {
		t.Errorf("expected default backend in file, got %q", settings.Backend)
	}

	// Second call must not overwrite user edits
	if err := os.WriteFile(path, []byte(`{"backend":"sqlite"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	settings, _ = loadConfigFile(path)
	if settings.Backend != BackendSQLite {
		t.Errorf("EnsureConfigFile overwrote existing file, backend=%q", settings.Backend)
	}
}
