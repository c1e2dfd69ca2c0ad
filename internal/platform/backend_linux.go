//go:build linux

package platform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/taskveil/internal/x11"
)

// LinuxBackend hides windows through the window manager's skip-taskbar hint.
// The hint is the non-Windows equivalent of the owner-window technique: the
// window manager owns the taskbar, so visibility is a state request rather
// than a style mutation.
type LinuxBackend struct {
	conn *x11.Connection

	mu     sync.Mutex
	hidden map[WindowID]struct{}
}

var _ Backend = (*LinuxBackend)(nil)

// NewBackend opens an X11 connection and returns a Linux backend. X11 has a
// single hiding mechanism, so any strategy other than auto is rejected.
func NewBackend(opts Options) (Backend, error) {
	if opts.Strategy != "" && opts.Strategy != StrategyAuto {
		return nil, fmt.Errorf("strategy %q is not available on X11 (only %q)", opts.Strategy, StrategyAuto)
	}
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{
		conn:   conn,
		hidden: make(map[WindowID]struct{}),
	}, nil
}

// ListWindows returns the EWMH client list.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	clients, err := b.conn.ListClients()
	if err != nil {
		return nil, err
	}
	windows := make([]Window, 0, len(clients))
	for _, c := range clients {
		windows = append(windows, Window{
			ID:    WindowID(c.ID),
			Title: c.Title,
			Class: c.Class,
			PID:   c.PID,
		})
	}
	return windows, nil
}

// ActiveWindow returns the currently focused window.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	win, err := b.conn.GetActiveWindow()
	if err != nil {
		return 0, fmt.Errorf("failed to get active window: %w", err)
	}
	if win == 0 {
		return 0, ErrWindowNotFound
	}
	return WindowID(win), nil
}

// Hide requests the skip-taskbar state for the window.
func (b *LinuxBackend) Hide(id WindowID) error {
	if err := b.conn.SetSkipTaskbar(xproto.Window(id)); err != nil {
		return err
	}
	b.mu.Lock()
	b.hidden[id] = struct{}{}
	b.mu.Unlock()
	return nil
}

// Restore clears the skip-taskbar state for the window.
func (b *LinuxBackend) Restore(id WindowID) error {
	if err := b.conn.ClearSkipTaskbar(xproto.Window(id)); err != nil {
		return err
	}
	b.mu.Lock()
	delete(b.hidden, id)
	b.mu.Unlock()
	return nil
}

// HiddenWindows returns the windows hidden through this backend, in
// ascending ID order.
func (b *LinuxBackend) HiddenWindows() []WindowID {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]WindowID, 0, len(b.hidden))
	for id := range b.hidden {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Close disconnects from the X11 server.
func (b *LinuxBackend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}
