// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Covers env var expansion and invalid field rejection

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daybook.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/daybook/journals.db
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/daybook/journals.db" {
		t.Errorf("unexpected database path: %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("unexpected level: %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("unexpected format: %q", cfg.Logging.Format)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("DAYBOOK_TEST_DIR", "/var/data")

	path := writeConfig(t, `
database:
  path: "${DAYBOOK_TEST_DIR}/journals.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "/var/data/journals.db" {
		t.Errorf("env not expanded: %q", cfg.Database.Path)
	}
}

func TestLoad_MissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: info
`)

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for missing database.path")
	}
}

func TestLoad_InvalidLevel(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/journals.db
logging:
  level: loud
`)

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for invalid logging.level")
	}
}

func TestLoad_FileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default("/home/u/.local/share")
	if cfg.Database.Path != "/home/u/.local/share/daybook/journals.db" {
		t.Errorf("unexpected default path: %q", cfg.Database.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}
