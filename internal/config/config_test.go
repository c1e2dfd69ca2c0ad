package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	data := []byte(`
strategy: taskbar-list
watch:
  hotkey: ctrl+alt+t
  notify: false
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Strategy != "taskbar-list" {
		t.Errorf("strategy = %q, want taskbar-list", cfg.Strategy)
	}
	if cfg.Watch.Hotkey != "ctrl+alt+t" {
		t.Errorf("hotkey = %q, want ctrl+alt+t", cfg.Watch.Hotkey)
	}
	if cfg.Watch.Notify {
		t.Error("notify should be overridden to false")
	}
	// Untouched values keep their defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("logging level = %q, want default info", cfg.Logging.Level)
	}
	if cfg.Logging.MaxSizeMB != 5 {
		t.Errorf("max_size_mb = %d, want default 5", cfg.Logging.MaxSizeMB)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"bad strategy", "strategy: hide-harder", "invalid strategy"},
		{"bad level", "logging:\n  level: loud", "invalid logging level"},
		{"empty hotkey", "watch:\n  hotkey: \"\"", "hotkey must not be empty"},
		{"bad size", "logging:\n  enabled: true\n  max_size_mb: 0", "max_size_mb"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatalf("expected error for %q", tc.yaml)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("strategy: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFromFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromFile on missing file: %v", err)
	}
	if cfg.Strategy != "auto" {
		t.Errorf("strategy = %q, want default auto", cfg.Strategy)
	}
}

func TestLoadFromFileReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("owner_title: ghost anchor\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.OwnerTitle != "ghost anchor" {
		t.Errorf("owner_title = %q, want %q", cfg.OwnerTitle, "ghost anchor")
	}
}

func TestLoadFromFileInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("strategy: nope\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected validation error")
	}
	var pathErr *os.PathError
	if _, err := LoadFromFile(path); errors.As(err, &pathErr) {
		t.Error("validation failure should not be a path error")
	}
}
