package taskbar

// Handle identifies a top-level window managed by the host windowing
// subsystem. Target handles are borrowed from the host; the controller only
// owns the hidden owner windows it creates itself.
type Handle uintptr

// Extended-style bits that control taskbar participation.
const (
	// ExStyleAppWindow forces a top-level window onto the taskbar.
	ExStyleAppWindow uint32 = 0x00040000
	// ExStyleToolWindow marks a window as a floating tool window.
	ExStyleToolWindow uint32 = 0x00000080
)

// taskbarStyleMask covers the two bits the controller is allowed to touch.
const taskbarStyleMask = ExStyleAppWindow | ExStyleToolWindow

// WindowSystem is the boundary to the host windowing subsystem. All calls are
// synchronous and report failure through errors or sentinel values; nothing
// here retries, suspends, or requires cancellation.
type WindowSystem interface {
	// ClassName returns the window-class name of target. Implementations must
	// size the lookup buffer generously and treat truncation as an error.
	ClassName(target Handle) (string, error)

	// CreateHiddenOwner creates an invisible top-level window of the given
	// class with no parent and the given title. The window is never shown.
	CreateHiddenOwner(className, title string) (Handle, error)

	// SetOwner points target's owner relationship at owner. A zero owner
	// clears the relationship.
	SetOwner(target, owner Handle) error

	// ExStyle returns target's extended window style bits.
	ExStyle(target Handle) (uint32, error)

	// SetExStyle overwrites target's extended window style bits. Callers are
	// expected to read-modify-write so unrelated bits survive.
	SetExStyle(target Handle, style uint32) error

	// InterceptDestroy replaces target's message procedure with one that
	// invokes onDestroy when the window is being destroyed and delegates
	// every other message to the stored previous procedure. The returned
	// function reinstalls the previous procedure.
	InterceptDestroy(target Handle, onDestroy func()) (restore func(), err error)

	// DestroyWindow destroys a window previously created by this subsystem.
	DestroyWindow(h Handle) error

	// DeleteTaskbarTab unregisters target from the taskbar list directly,
	// without any owner-window bookkeeping.
	DeleteTaskbarTab(target Handle) error

	// QuitMessageLoop signals the message loop hosting the hidden owner's
	// thread to terminate.
	QuitMessageLoop()
}
