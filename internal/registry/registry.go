// Package registry persists which windows are hidden across taskveil
// invocations. One-shot commands come and go; the registry in the runtime
// directory is what lets a later process list and restore what an earlier
// one hid.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/1broseidon/taskveil/internal/runtimepath"
)

// Entry records one hidden window.
type Entry struct {
	Window   uint64    `json:"window"`
	Title    string    `json:"title,omitempty"`
	Strategy string    `json:"strategy,omitempty"`
	HiddenAt time.Time `json:"hidden_at"`
}

// hiddenRegistry is the on-disk format, keyed by window handle.
type hiddenRegistry struct {
	Hidden map[uint64]Entry `json:"hidden"`
}

func load() (*hiddenRegistry, error) {
	path, err := runtimepath.RegistryPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &hiddenRegistry{Hidden: make(map[uint64]Entry)}, nil
		}
		return nil, fmt.Errorf("failed to read hidden-window registry: %w", err)
	}

	var reg hiddenRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse hidden-window registry: %w", err)
	}
	if reg.Hidden == nil {
		reg.Hidden = make(map[uint64]Entry)
	}
	return &reg, nil
}

func save(reg *hiddenRegistry) error {
	path, err := runtimepath.RegistryPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode hidden-window registry: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write hidden-window registry: %w", err)
	}
	return nil
}

// Add records a window as hidden. An existing entry for the same window is
// replaced.
func Add(e Entry) error {
	if e.HiddenAt.IsZero() {
		e.HiddenAt = time.Now()
	}

	reg, err := load()
	if err != nil {
		return err
	}
	reg.Hidden[e.Window] = e
	return save(reg)
}

// Remove drops a window from the registry. Removing an unknown window is not
// an error.
func Remove(window uint64) error {
	reg, err := load()
	if err != nil {
		return err
	}
	if _, ok := reg.Hidden[window]; !ok {
		return nil
	}
	delete(reg.Hidden, window)
	return save(reg)
}

// Contains reports whether the window is recorded as hidden.
func Contains(window uint64) bool {
	reg, err := load()
	if err != nil {
		return false
	}
	_, ok := reg.Hidden[window]
	return ok
}

// List returns all recorded entries in ascending window order.
func List() ([]Entry, error) {
	reg, err := load()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(reg.Hidden))
	for _, e := range reg.Hidden {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Window < out[j].Window })
	return out, nil
}
