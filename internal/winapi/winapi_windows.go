//go:build windows

// Package winapi wraps the user32/ole32 surface taskveil needs: window-class
// lookup, hidden window creation, owner/style manipulation, message-procedure
// subclassing and the ITaskbarList COM interface.
package winapi

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
	procSetLastError     = kernel32.NewProc("SetLastError")

	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procCreateWindowExW          = user32.NewProc("CreateWindowExW")
	procDestroyWindow            = user32.NewProc("DestroyWindow")
	procGetWindowLongPtrW        = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW        = user32.NewProc("SetWindowLongPtrW")
	procCallWindowProcW          = user32.NewProc("CallWindowProcW")
	procPostQuitMessage          = user32.NewProc("PostQuitMessage")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procIsWindow                 = user32.NewProc("IsWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
)

// Window long-pointer indexes.
const (
	gwlExStyle     = -20
	gwlpWndProc    = -4
	gwlpHwndParent = -8
)

// wmDestroy is the message delivered while a window is being torn down.
const wmDestroy = 0x0002

// classNameBufferLen bounds the class-name lookup buffer. Win32 caps class
// names at 256 characters, so a full buffer means truncation.
const classNameBufferLen = 256

// ClassName returns the window-class name of hwnd. Truncation is reported as
// an error rather than returning a silently shortened name.
func ClassName(hwnd uintptr) (string, error) {
	var buf [classNameBufferLen]uint16
	n, _, err := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return "", fmt.Errorf("GetClassNameW: %w", err)
	}
	if int(n) >= len(buf)-1 {
		return "", fmt.Errorf("GetClassNameW: class name exceeds %d characters", len(buf)-1)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

// CreateHiddenWindow creates an invisible top-level window of the given class
// with no parent and no visible styles. The window is never shown.
func CreateHiddenWindow(className, title string) (uintptr, error) {
	classPtr, err := windows.UTF16PtrFromString(className)
	if err != nil {
		return 0, err
	}
	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	inst, _, instErr := procGetModuleHandleW.Call(0)
	if inst == 0 {
		return 0, fmt.Errorf("GetModuleHandle: %w", instErr)
	}
	hwnd, _, callErr := procCreateWindowExW.Call(
		0, // no extended styles
		uintptr(unsafe.Pointer(classPtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		0, // WS_OVERLAPPED, never shown
		0, 0, 0, 0,
		0, // no parent
		0, // no menu
		inst,
		0,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowExW class %q: %w", className, callErr)
	}
	return hwnd, nil
}

// DestroyWindow destroys hwnd.
func DestroyWindow(hwnd uintptr) error {
	ok, _, err := procDestroyWindow.Call(hwnd)
	if ok == 0 {
		return fmt.Errorf("DestroyWindow: %w", err)
	}
	return nil
}

// SetOwner points hwnd's owner relationship at owner; zero clears it.
func SetOwner(hwnd, owner uintptr) error {
	return setWindowLongPtr(hwnd, gwlpHwndParent, owner)
}

// ExStyle returns hwnd's extended window style bits.
func ExStyle(hwnd uintptr) (uint32, error) {
	v, err := getWindowLongPtr(hwnd, gwlExStyle)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// SetExStyle overwrites hwnd's extended window style bits.
func SetExStyle(hwnd uintptr, style uint32) error {
	return setWindowLongPtr(hwnd, gwlExStyle, uintptr(style))
}

// PostQuitMessage signals the calling thread's message loop to terminate.
func PostQuitMessage() {
	procPostQuitMessage.Call(0)
}

// ForegroundWindow returns the window the user is currently working with, or
// zero when no window has the foreground.
func ForegroundWindow() uintptr {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return hwnd
}

// IsWindow reports whether hwnd still identifies a live window.
func IsWindow(hwnd uintptr) bool {
	v, _, _ := procIsWindow.Call(hwnd)
	return v != 0
}

func windowText(hwnd uintptr) string {
	var buf [512]uint16
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

func windowPID(hwnd uintptr) uint32 {
	var pid uint32
	procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return pid
}

// WindowInfo describes one visible top-level window.
type WindowInfo struct {
	Handle uintptr
	Title  string
	Class  string
	PID    uint32
}

// Enumeration shares one callback for the life of the process; callbacks
// created with syscall.NewCallback are never released.
var (
	enumOnce     sync.Once
	enumCallback uintptr

	enumMu      sync.Mutex
	enumResults []WindowInfo
)

func enumProc(hwnd uintptr, _ uintptr) uintptr {
	vis, _, _ := procIsWindowVisible.Call(hwnd)
	if vis == 0 {
		return 1 // continue
	}
	title := windowText(hwnd)
	if title == "" {
		return 1
	}
	class, err := ClassName(hwnd)
	if err != nil {
		class = ""
	}
	enumResults = append(enumResults, WindowInfo{
		Handle: hwnd,
		Title:  title,
		Class:  class,
		PID:    windowPID(hwnd),
	})
	return 1
}

// ListWindows enumerates visible top-level windows that carry a title.
func ListWindows() ([]WindowInfo, error) {
	enumOnce.Do(func() {
		enumCallback = syscall.NewCallback(enumProc)
	})

	enumMu.Lock()
	defer enumMu.Unlock()

	enumResults = nil
	ok, _, err := procEnumWindows.Call(enumCallback, 0)
	if ok == 0 {
		return nil, fmt.Errorf("EnumWindows: %w", err)
	}
	out := enumResults
	enumResults = nil
	return out, nil
}

// getWindowLongPtr reads a window long pointer. A zero return is only an
// error when GetLastError reports one, since zero is a valid stored value.
func getWindowLongPtr(hwnd uintptr, index int32) (uintptr, error) {
	v, _, err := procGetWindowLongPtrW.Call(hwnd, uintptr(index))
	if v == 0 {
		if errno, ok := err.(syscall.Errno); ok && errno != 0 {
			return 0, fmt.Errorf("GetWindowLongPtrW(%d): %w", index, err)
		}
	}
	return v, nil
}

func setWindowLongPtr(hwnd uintptr, index int32, value uintptr) (err error) {
	// SetWindowLongPtr returns the previous value, which may legitimately be
	// zero; clear the last error first to disambiguate.
	procSetLastError.Call(0)
	prev, _, callErr := procSetWindowLongPtrW.Call(hwnd, uintptr(index), value)
	if prev == 0 {
		if errno, ok := callErr.(syscall.Errno); ok && errno != 0 {
			return fmt.Errorf("SetWindowLongPtrW(%d): %w", index, callErr)
		}
	}
	return nil
}
