package registry

import (
	"testing"
	"time"
)

func TestAddListRemove(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	if err := Add(Entry{Window: 0x2a, Title: "Notes", Strategy: "owner-window"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := Add(Entry{Window: 0x10, Title: "Mail"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Window != 0x10 || entries[1].Window != 0x2a {
		t.Fatalf("entries not in ascending window order: %+v", entries)
	}
	if entries[1].Title != "Notes" {
		t.Errorf("title = %q, want %q", entries[1].Title, "Notes")
	}
	if entries[0].HiddenAt.IsZero() {
		t.Error("HiddenAt not stamped on Add")
	}

	if !Contains(0x2a) {
		t.Error("Contains(0x2a) = false, want true")
	}

	if err := Remove(0x2a); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if Contains(0x2a) {
		t.Error("Contains(0x2a) = true after Remove")
	}

	entries, err = List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries after remove, want 1", len(entries))
	}
}

func TestAddReplacesExistingEntry(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := Add(Entry{Window: 7, Title: "Old", HiddenAt: old}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := Add(Entry{Window: 7, Title: "New"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Title != "New" {
		t.Errorf("title = %q, want %q", entries[0].Title, "New")
	}
}

func TestRemoveUnknownWindowIsNoop(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	if err := Remove(999); err != nil {
		t.Fatalf("Remove of unknown window: %v", err)
	}
}

func TestListEmptyRegistry(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	entries, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}
