package main

import (
	"errors"
	"testing"

	"github.com/1broseidon/taskveil/internal/platform"
)

type stubBackend struct {
	windows []platform.Window
}

func (b *stubBackend) ListWindows() ([]platform.Window, error) { return b.windows, nil }
func (b *stubBackend) ActiveWindow() (platform.WindowID, error) {
	return 0, platform.ErrWindowNotFound
}
func (b *stubBackend) Hide(platform.WindowID) error    { return nil }
func (b *stubBackend) Restore(platform.WindowID) error { return nil }
func (b *stubBackend) HiddenWindows() []platform.WindowID {
	return nil
}
func (b *stubBackend) Close() {}

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in   string
		want platform.WindowID
		ok   bool
	}{
		{"42", 42, true},
		{"0x2a", 42, true},
		{"0X2A", 42, true},
		{" 42 ", 42, true},
		{"0", 0, false},
		{"", 0, false},
		{"Notepad", 0, false},
		{"0x", 0, false},
		{"12abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseWindowID(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseWindowID(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveWindowByID(t *testing.T) {
	backend := &stubBackend{}
	id, err := resolveWindow(backend, "0x1f4")
	if err != nil {
		t.Fatalf("resolveWindow failed: %v", err)
	}
	if id != 0x1f4 {
		t.Errorf("id = %#x, want 0x1f4", uintptr(id))
	}
}

func TestResolveWindowByTitleSubstring(t *testing.T) {
	backend := &stubBackend{windows: []platform.Window{
		{ID: 100, Title: "Mail - Inbox"},
		{ID: 200, Title: "Media Player"},
	}}

	id, err := resolveWindow(backend, "media")
	if err != nil {
		t.Fatalf("resolveWindow failed: %v", err)
	}
	if id != 200 {
		t.Errorf("id = %d, want 200", id)
	}
}

func TestResolveWindowFirstMatchWins(t *testing.T) {
	backend := &stubBackend{windows: []platform.Window{
		{ID: 100, Title: "Editor - notes.txt"},
		{ID: 200, Title: "Editor - todo.txt"},
	}}

	id, err := resolveWindow(backend, "editor")
	if err != nil {
		t.Fatalf("resolveWindow failed: %v", err)
	}
	if id != 100 {
		t.Errorf("id = %d, want 100", id)
	}
}

func TestWindowTitleLookup(t *testing.T) {
	backend := &stubBackend{windows: []platform.Window{
		{ID: 100, Title: "Mail - Inbox"},
		{ID: 200, Title: "Media Player"},
	}}

	if got := windowTitle(backend, 200); got != "Media Player" {
		t.Errorf("windowTitle(200) = %q, want %q", got, "Media Player")
	}
	if got := windowTitle(backend, 999); got != "" {
		t.Errorf("windowTitle(999) = %q, want empty", got)
	}
}

func TestResolveWindowNoMatch(t *testing.T) {
	backend := &stubBackend{windows: []platform.Window{
		{ID: 100, Title: "Mail - Inbox"},
	}}

	if _, err := resolveWindow(backend, "spreadsheet"); !errors.Is(err, platform.ErrWindowNotFound) {
		t.Fatalf("expected ErrWindowNotFound, got %v", err)
	}
}
