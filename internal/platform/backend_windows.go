//go:build windows

package platform

import (
	"errors"
	"fmt"

	"github.com/1broseidon/taskveil/internal/taskbar"
	"github.com/1broseidon/taskveil/internal/winapi"
)

// WindowsBackend hides windows with the taskbar controller over the real
// Win32 windowing subsystem.
type WindowsBackend struct {
	ctrl     *taskbar.Controller
	strategy Strategy
}

var _ Backend = (*WindowsBackend)(nil)

// NewBackend returns a Windows backend using the configured hiding strategy.
func NewBackend(opts Options) (Backend, error) {
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyAuto
	}
	if !strategy.Valid() {
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
	return &WindowsBackend{
		ctrl:     taskbar.New(win32System{}, taskbar.WithOwnerTitle(opts.OwnerTitle)),
		strategy: strategy,
	}, nil
}

// Controller exposes the underlying taskbar controller for callers that need
// controller-level options (owner title, taskbar-list path).
func (b *WindowsBackend) Controller() *taskbar.Controller {
	return b.ctrl
}

// ListWindows enumerates visible titled top-level windows.
func (b *WindowsBackend) ListWindows() ([]Window, error) {
	infos, err := winapi.ListWindows()
	if err != nil {
		return nil, err
	}
	windows := make([]Window, 0, len(infos))
	for _, info := range infos {
		windows = append(windows, Window{
			ID:    WindowID(info.Handle),
			Title: info.Title,
			Class: info.Class,
			PID:   int(info.PID),
		})
	}
	return windows, nil
}

// ActiveWindow returns the foreground window.
func (b *WindowsBackend) ActiveWindow() (WindowID, error) {
	hwnd := winapi.ForegroundWindow()
	if hwnd == 0 {
		return 0, ErrWindowNotFound
	}
	return WindowID(hwnd), nil
}

// Hide removes the window from the taskbar using the configured strategy.
// Auto prefers the owner-window technique and falls back to the taskbar list
// when the owner window cannot be created.
func (b *WindowsBackend) Hide(id WindowID) error {
	target := taskbar.Handle(id)
	switch b.strategy {
	case StrategyTaskbarList:
		return b.ctrl.HideFromTaskbarList(target)
	case StrategyOwnerWindow:
		return b.ctrl.Hide(target)
	default:
		if err := b.ctrl.Hide(target); err != nil {
			if autoFallsBack(err) {
				if listErr := b.ctrl.HideFromTaskbarList(target); listErr == nil {
					return nil
				}
			}
			return err
		}
		return nil
	}
}

// autoFallsBack reports whether the auto strategy may retry via the taskbar
// list after an owner-window failure. Only owner creation failing means the
// mechanism is unavailable; an already-hidden window or a failed class lookup
// is an answer about the target, not the mechanism.
func autoFallsBack(err error) bool {
	return errors.Is(err, taskbar.ErrCreateOwner)
}

// Restore lists the window in the taskbar again. Windows hidden via the
// taskbar-list path are untracked, so restore re-adds their tab directly.
func (b *WindowsBackend) Restore(id WindowID) error {
	target := taskbar.Handle(id)
	if b.ctrl.IsHidden(target) {
		return b.ctrl.Restore(target)
	}
	return winapi.AddTaskbarTab(uintptr(id))
}

// HiddenWindows returns the windows tracked by the controller.
func (b *WindowsBackend) HiddenWindows() []WindowID {
	handles := b.ctrl.Hidden()
	out := make([]WindowID, 0, len(handles))
	for _, h := range handles {
		out = append(out, WindowID(h))
	}
	return out
}

// Close is a no-op; Win32 needs no persistent connection.
func (b *WindowsBackend) Close() {}

// win32System adapts the winapi package to the controller's WindowSystem
// boundary.
type win32System struct{}

var _ taskbar.WindowSystem = win32System{}

func (win32System) ClassName(target taskbar.Handle) (string, error) {
	return winapi.ClassName(uintptr(target))
}

func (win32System) CreateHiddenOwner(className, title string) (taskbar.Handle, error) {
	hwnd, err := winapi.CreateHiddenWindow(className, title)
	return taskbar.Handle(hwnd), err
}

func (win32System) SetOwner(target, owner taskbar.Handle) error {
	return winapi.SetOwner(uintptr(target), uintptr(owner))
}

func (win32System) ExStyle(target taskbar.Handle) (uint32, error) {
	return winapi.ExStyle(uintptr(target))
}

func (win32System) SetExStyle(target taskbar.Handle, style uint32) error {
	return winapi.SetExStyle(uintptr(target), style)
}

func (win32System) InterceptDestroy(target taskbar.Handle, onDestroy func()) (func(), error) {
	return winapi.Subclass(uintptr(target), onDestroy)
}

func (win32System) DestroyWindow(h taskbar.Handle) error {
	return winapi.DestroyWindow(uintptr(h))
}

func (win32System) DeleteTaskbarTab(target taskbar.Handle) error {
	return winapi.DeleteTaskbarTab(uintptr(target))
}

func (win32System) QuitMessageLoop() {
	winapi.PostQuitMessage()
}
