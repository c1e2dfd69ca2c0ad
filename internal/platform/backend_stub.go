//go:build !linux && !windows

package platform

import (
	"fmt"
	"runtime"
)

// NewBackend reports that no taskbar backend exists for this platform.
func NewBackend(Options) (Backend, error) {
	return nil, fmt.Errorf("taskbar control is not supported on %s", runtime.GOOS)
}
