// Package taskbar removes top-level windows from the host taskbar and
// restores them. The core technique parents the target window to an invisible
// "owner" window of the same class and clears the taskbar-participation
// extended-style bits; the owner's lifetime is tied to the target's by
// intercepting the target's destroy notification. An alternate, narrower path
// unregisters the window from the taskbar list directly.
//
// The controller tracks one hidden owner per target window, so independent
// windows can be hidden concurrently without clobbering each other.
package taskbar

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultOwnerTitle is the placeholder title given to hidden owner windows.
const DefaultOwnerTitle = "taskveil hidden owner"

// hiddenWindow records everything needed to undo a Hide.
type hiddenWindow struct {
	owner       Handle // the invisible owner window, owned by the controller
	savedStyle  uint32 // taskbar-participation bits as they were before Hide
	restoreProc func() // reinstalls the previous message procedure
}

// Controller hides windows from the taskbar through an opaque WindowSystem.
// All methods are safe for concurrent use, though the host windowing
// subsystem typically requires calls from the thread owning the target's
// message queue.
type Controller struct {
	sys        WindowSystem
	ownerTitle string

	mu     sync.Mutex
	hidden map[Handle]*hiddenWindow
}

// Option configures a Controller.
type Option func(*Controller)

// WithOwnerTitle overrides the placeholder title of hidden owner windows.
func WithOwnerTitle(title string) Option {
	return func(c *Controller) {
		if title != "" {
			c.ownerTitle = title
		}
	}
}

// New creates a controller on top of the given windowing subsystem.
func New(sys WindowSystem, opts ...Option) *Controller {
	c := &Controller{
		sys:        sys,
		ownerTitle: DefaultOwnerTitle,
		hidden:     make(map[Handle]*hiddenWindow),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hide removes target from the taskbar using the hidden-owner technique.
//
// The class name is queried before anything is created, so an early failure
// leaks nothing. Every step after the owner window exists is transactional:
// on failure the owner is destroyed and the owner relationship cleared before
// the error is returned.
func (c *Controller) Hide(target Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.hidden[target]; ok {
		return fmt.Errorf("window %#x: %w", uintptr(target), ErrAlreadyHidden)
	}

	class, err := c.sys.ClassName(target)
	if err != nil {
		return fmt.Errorf("window %#x: %w: %v", uintptr(target), ErrClassLookup, err)
	}

	owner, err := c.sys.CreateHiddenOwner(class, c.ownerTitle)
	if err != nil {
		return fmt.Errorf("window %#x class %q: %w: %v", uintptr(target), class, ErrCreateOwner, err)
	}

	// Past this point the owner window exists and must not leak.
	fail := func(step string, err error) error {
		_ = c.sys.SetOwner(target, 0)
		_ = c.sys.DestroyWindow(owner)
		return fmt.Errorf("window %#x: %s: %w", uintptr(target), step, err)
	}

	if err := c.sys.SetOwner(target, owner); err != nil {
		return fail("set owner relationship", err)
	}

	style, err := c.sys.ExStyle(target)
	if err != nil {
		return fail("read extended style", err)
	}
	if err := c.sys.SetExStyle(target, style&^taskbarStyleMask); err != nil {
		return fail("clear taskbar style bits", err)
	}

	restoreProc, err := c.sys.InterceptDestroy(target, func() {
		c.targetDestroyed(target)
	})
	if err != nil {
		// Put the style bits back before tearing the owner down.
		_ = c.sys.SetExStyle(target, style)
		return fail("intercept destroy notification", err)
	}

	c.hidden[target] = &hiddenWindow{
		owner:       owner,
		savedStyle:  style & taskbarStyleMask,
		restoreProc: restoreProc,
	}
	return nil
}

// HideFromTaskbarList removes target from the taskbar via the taskbar-list
// interface. This path has a narrower contract than Hide: it affects only the
// taskbar entry, creates no hidden owner, and tracks nothing. It fails with
// ErrTaskbarList when the interface cannot be instantiated.
func (c *Controller) HideFromTaskbarList(target Handle) error {
	if err := c.sys.DeleteTaskbarTab(target); err != nil {
		return fmt.Errorf("window %#x: %w: %v", uintptr(target), ErrTaskbarList, err)
	}
	return nil
}

// Restore undoes a previous Hide: the previous message procedure is
// reinstalled, the owner relationship cleared, the saved taskbar style bits
// put back, and the hidden owner window destroyed.
func (c *Controller) Restore(target Handle) error {
	c.mu.Lock()
	hw, ok := c.hidden[target]
	if ok {
		delete(c.hidden, target)
	}
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("window %#x: %w", uintptr(target), ErrNotHidden)
	}

	hw.restoreProc()
	if err := c.sys.SetOwner(target, 0); err != nil {
		return fmt.Errorf("window %#x: clear owner relationship: %w", uintptr(target), err)
	}
	style, err := c.sys.ExStyle(target)
	if err != nil {
		return fmt.Errorf("window %#x: read extended style: %w", uintptr(target), err)
	}
	if err := c.sys.SetExStyle(target, style&^taskbarStyleMask|hw.savedStyle); err != nil {
		return fmt.Errorf("window %#x: restore taskbar style bits: %w", uintptr(target), err)
	}
	if err := c.sys.DestroyWindow(hw.owner); err != nil {
		return fmt.Errorf("window %#x: destroy hidden owner: %w", uintptr(target), err)
	}
	return nil
}

// IsHidden reports whether target currently has a tracked hidden owner.
func (c *Controller) IsHidden(target Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.hidden[target]
	return ok
}

// Hidden returns the tracked targets in ascending handle order.
func (c *Controller) Hidden() []Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Handle, 0, len(c.hidden))
	for h := range c.hidden {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// targetDestroyed runs from the intercepted message procedure while the
// target window is being torn down. It must not block: it destroys the
// tracked hidden owner so no invisible window outlives its target, then
// signals the hosting message loop to terminate.
func (c *Controller) targetDestroyed(target Handle) {
	c.mu.Lock()
	hw, ok := c.hidden[target]
	if ok {
		delete(c.hidden, target)
	}
	c.mu.Unlock()

	if !ok {
		return
	}
	_ = c.sys.DestroyWindow(hw.owner)
	c.sys.QuitMessageLoop()
}
