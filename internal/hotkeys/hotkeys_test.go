//go:build linux || windows || darwin

package hotkeys

import (
	"errors"
	"testing"
)

func TestParseValidCombo(t *testing.T) {
	mods, key, err := Parse("ctrl+shift+h")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(mods) != 2 {
		t.Errorf("got %d modifiers, want 2", len(mods))
	}
	if key != keyMap["h"] {
		t.Errorf("key = %v, want %v", key, keyMap["h"])
	}
}

func TestParseNormalizesCase(t *testing.T) {
	if _, _, err := Parse(" Ctrl+F5 "); err != nil {
		t.Fatalf("Parse failed on mixed case: %v", err)
	}
}

func TestParseDeduplicatesModifiers(t *testing.T) {
	mods, _, err := Parse("ctrl+control+x")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(mods) != 1 {
		t.Errorf("got %d modifiers, want 1 after dedup", len(mods))
	}
}

func TestParseRejectsBareKey(t *testing.T) {
	if _, _, err := Parse("h"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestParseRejectsUnknownKey(t *testing.T) {
	if _, _, err := Parse("ctrl+volumeup"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestParseRejectsUnknownModifier(t *testing.T) {
	if _, _, err := Parse("hyper+h"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
