package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// _NET_WM_STATE action atoms.
const (
	stateRemove = 0
	stateAdd    = 1
)

const skipTaskbarState = "_NET_WM_STATE_SKIP_TASKBAR"

// Client describes one managed top-level window.
type Client struct {
	ID    xproto.Window
	Title string
	Class string
	PID   int
}

// SetSkipTaskbar asks the window manager to drop windowID from the taskbar.
func (c *Connection) SetSkipTaskbar(windowID xproto.Window) error {
	if err := ewmh.WmStateReq(c.XUtil, windowID, stateAdd, skipTaskbarState); err != nil {
		return fmt.Errorf("failed to request %s on window %d: %w", skipTaskbarState, windowID, err)
	}
	return nil
}

// ClearSkipTaskbar asks the window manager to list windowID in the taskbar again.
func (c *Connection) ClearSkipTaskbar(windowID xproto.Window) error {
	if err := ewmh.WmStateReq(c.XUtil, windowID, stateRemove, skipTaskbarState); err != nil {
		return fmt.Errorf("failed to clear %s on window %d: %w", skipTaskbarState, windowID, err)
	}
	return nil
}

// HasSkipTaskbar reports whether the window manager currently skips windowID.
func (c *Connection) HasSkipTaskbar(windowID xproto.Window) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false, fmt.Errorf("failed to get window states: %w", err)
	}
	for _, state := range states {
		if state == skipTaskbarState {
			return true, nil
		}
	}
	return false, nil
}

// ListClients returns the EWMH client list with title, class and PID filled
// in where the window manager exposes them.
func (c *Connection) ListClients() ([]Client, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	out := make([]Client, 0, len(clients))
	for _, win := range clients {
		client := Client{ID: win}

		if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil && name != "" {
			client.Title = name
		} else if name, err := icccm.WmNameGet(c.XUtil, win); err == nil {
			client.Title = name
		}

		if class, err := icccm.WmClassGet(c.XUtil, win); err == nil && class != nil {
			client.Class = class.Class
		}

		if pid, err := ewmh.WmPidGet(c.XUtil, win); err == nil {
			client.PID = int(pid)
		}

		out = append(out, client)
	}
	return out, nil
}

// GetActiveWindow returns the currently focused window.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}
