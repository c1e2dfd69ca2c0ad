//go:build windows

package winapi

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
)

var (
	clsidTaskbarList = ole.NewGUID("{56FDF344-FD6D-11D0-958A-006097C9A090}")
	iidITaskbarList  = ole.NewGUID("{56FDF342-FD6D-11D0-958A-006097C9A090}")
)

// sFalse is the COM "already initialized" success code.
const sFalse = 0x00000001

// iTaskbarList wraps the raw ITaskbarList COM interface.
type iTaskbarList struct {
	ole.IUnknown
}

type iTaskbarListVtbl struct {
	ole.IUnknownVtbl
	HrInit       uintptr
	AddTab       uintptr
	DeleteTab    uintptr
	ActivateTab  uintptr
	SetActiveAlt uintptr
}

func (t *iTaskbarList) vtbl() *iTaskbarListVtbl {
	return (*iTaskbarListVtbl)(unsafe.Pointer(t.RawVTable))
}

// DeleteTaskbarTab unregisters hwnd from the taskbar list. The interface
// pointer is only used after CoCreateInstance succeeds; an instantiation
// failure is reported as an error, never dereferenced.
func DeleteTaskbarTab(hwnd uintptr) error {
	if err := coInitialize(); err != nil {
		return err
	}

	unknown, err := ole.CreateInstance(clsidTaskbarList, iidITaskbarList)
	if err != nil {
		return fmt.Errorf("create ITaskbarList instance: %w", err)
	}
	if unknown == nil {
		return errors.New("create ITaskbarList instance: nil interface")
	}
	tb := (*iTaskbarList)(unsafe.Pointer(unknown))
	defer tb.Release()

	if hr, _, _ := syscall.SyscallN(tb.vtbl().HrInit, uintptr(unsafe.Pointer(tb))); failed(hr) {
		return fmt.Errorf("ITaskbarList::HrInit: %w", ole.NewError(hr))
	}
	if hr, _, _ := syscall.SyscallN(tb.vtbl().DeleteTab, uintptr(unsafe.Pointer(tb)), hwnd); failed(hr) {
		return fmt.Errorf("ITaskbarList::DeleteTab: %w", ole.NewError(hr))
	}
	return nil
}

// AddTaskbarTab re-registers hwnd with the taskbar list.
func AddTaskbarTab(hwnd uintptr) error {
	if err := coInitialize(); err != nil {
		return err
	}

	unknown, err := ole.CreateInstance(clsidTaskbarList, iidITaskbarList)
	if err != nil {
		return fmt.Errorf("create ITaskbarList instance: %w", err)
	}
	if unknown == nil {
		return errors.New("create ITaskbarList instance: nil interface")
	}
	tb := (*iTaskbarList)(unsafe.Pointer(unknown))
	defer tb.Release()

	if hr, _, _ := syscall.SyscallN(tb.vtbl().HrInit, uintptr(unsafe.Pointer(tb))); failed(hr) {
		return fmt.Errorf("ITaskbarList::HrInit: %w", ole.NewError(hr))
	}
	if hr, _, _ := syscall.SyscallN(tb.vtbl().AddTab, uintptr(unsafe.Pointer(tb)), hwnd); failed(hr) {
		return fmt.Errorf("ITaskbarList::AddTab: %w", ole.NewError(hr))
	}
	return nil
}

func failed(hr uintptr) bool {
	return int32(hr) < 0
}

// coInitialize enters the apartment if this thread has not already.
func coInitialize() error {
	err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
	if err == nil {
		return nil
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) {
		switch oleErr.Code() {
		case ole.S_OK, sFalse:
			return nil
		}
	}
	return fmt.Errorf("CoInitializeEx: %w", err)
}
