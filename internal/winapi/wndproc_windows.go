//go:build windows

package winapi

import (
	"fmt"
	"sync"
	"syscall"
)

// subclassEntry stores the previous message procedure for a subclassed window
// together with the destroy hook. Messages other than the destroy
// notification are delegated to prev unchanged.
type subclassEntry struct {
	prev      uintptr
	onDestroy func()
}

var (
	subclassMu  sync.Mutex
	subclassed  = make(map[uintptr]*subclassEntry)
	subclassCB  uintptr
	subclassOne sync.Once
)

// sharedProc is the single Go callback installed as the message procedure of
// every subclassed window. syscall.NewCallback allocations are process-global
// and never released, so one shared callback dispatches for all windows.
func sharedProc(hwnd, msg, wparam, lparam uintptr) uintptr {
	subclassMu.Lock()
	e := subclassed[hwnd]
	if e != nil && msg == wmDestroy {
		delete(subclassed, hwnd)
	}
	subclassMu.Unlock()

	if e == nil {
		// Raced with Unsubclass; nothing sensible to delegate to.
		return 0
	}
	if msg == wmDestroy && e.onDestroy != nil {
		e.onDestroy()
	}
	ret, _, _ := procCallWindowProcW.Call(e.prev, hwnd, msg, wparam, lparam)
	return ret
}

// Subclass replaces hwnd's message procedure. onDestroy runs synchronously
// while the window is being destroyed; it must not block. The returned
// function reinstalls the previous procedure.
func Subclass(hwnd uintptr, onDestroy func()) (restore func(), err error) {
	subclassOne.Do(func() {
		subclassCB = syscall.NewCallback(sharedProc)
	})

	subclassMu.Lock()
	if _, ok := subclassed[hwnd]; ok {
		subclassMu.Unlock()
		return nil, fmt.Errorf("window %#x already subclassed", hwnd)
	}
	subclassMu.Unlock()

	prev, err := swapWndProc(hwnd, subclassCB)
	if err != nil {
		return nil, err
	}

	subclassMu.Lock()
	subclassed[hwnd] = &subclassEntry{prev: prev, onDestroy: onDestroy}
	subclassMu.Unlock()

	return func() {
		subclassMu.Lock()
		e := subclassed[hwnd]
		delete(subclassed, hwnd)
		subclassMu.Unlock()
		if e != nil && IsWindow(hwnd) {
			_, _ = swapWndProc(hwnd, e.prev)
		}
	}, nil
}

// swapWndProc installs proc as hwnd's message procedure and returns the
// previous one.
func swapWndProc(hwnd, proc uintptr) (uintptr, error) {
	procSetLastError.Call(0)
	index := int32(gwlpWndProc)
	prev, _, callErr := procSetWindowLongPtrW.Call(hwnd, uintptr(index), proc)
	if prev == 0 {
		if errno, ok := callErr.(syscall.Errno); ok && errno != 0 {
			return 0, fmt.Errorf("SetWindowLongPtrW(GWLP_WNDPROC): %w", callErr)
		}
	}
	return prev, nil
}
