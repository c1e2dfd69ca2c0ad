package platform

import "errors"

// WindowID is a platform-neutral window identifier.
type WindowID uintptr

// Window contains metadata for a top-level window.
type Window struct {
	ID    WindowID
	Title string
	Class string
	PID   int
}

// Strategy selects how windows are removed from the taskbar.
type Strategy string

const (
	// StrategyAuto lets the backend pick the best available mechanism.
	StrategyAuto Strategy = "auto"
	// StrategyOwnerWindow hides via an invisible owner window and style bits.
	StrategyOwnerWindow Strategy = "owner-window"
	// StrategyTaskbarList hides via the taskbar-list interface only.
	StrategyTaskbarList Strategy = "taskbar-list"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyAuto, StrategyOwnerWindow, StrategyTaskbarList:
		return true
	}
	return false
}

// ErrWindowNotFound is returned when a window ID or title matches nothing.
var ErrWindowNotFound = errors.New("window not found")

// Options configures backend construction.
type Options struct {
	// Strategy selects the hiding mechanism (Windows only; X11 has one).
	Strategy Strategy
	// OwnerTitle overrides the hidden owner window title (Windows only).
	OwnerTitle string
}

// Backend abstracts taskbar-visibility operations across platforms.
type Backend interface {
	// ListWindows returns the visible top-level windows.
	ListWindows() ([]Window, error)
	// ActiveWindow returns the currently focused window.
	ActiveWindow() (WindowID, error)
	// Hide removes the window from the taskbar.
	Hide(id WindowID) error
	// Restore lists the window in the taskbar again.
	Restore(id WindowID) error
	// HiddenWindows returns the windows this backend is currently hiding.
	HiddenWindows() []WindowID
	// Close releases backend resources.
	Close()
}
