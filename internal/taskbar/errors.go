package taskbar

import "errors"

var (
	// ErrClassLookup means the target's window-class name could not be read.
	ErrClassLookup = errors.New("window class lookup failed")

	// ErrCreateOwner means the hidden owner window could not be created.
	ErrCreateOwner = errors.New("hidden owner window creation failed")

	// ErrTaskbarList means the taskbar-list interface could not be
	// instantiated on this system.
	ErrTaskbarList = errors.New("taskbar list interface unavailable")

	// ErrAlreadyHidden means the target already has a tracked hidden owner.
	ErrAlreadyHidden = errors.New("window already hidden from taskbar")

	// ErrNotHidden means the target has no tracked hidden owner.
	ErrNotHidden = errors.New("window not hidden from taskbar")
)
