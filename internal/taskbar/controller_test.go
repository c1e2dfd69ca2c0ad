package taskbar

import (
	"errors"
	"fmt"
	"testing"
)

// fakeWindow is the fake subsystem's view of one window.
type fakeWindow struct {
	class       string
	title       string
	exStyle     uint32
	owner       Handle
	intercepted bool
	onDestroy   func()
}

// fakeWindowSystem implements WindowSystem in memory.
type fakeWindowSystem struct {
	windows map[Handle]*fakeWindow
	nextID  Handle

	createdOwners   []Handle
	destroyedOwners []Handle
	quitSignals     int

	failClassName   bool
	failCreateOwner bool
	failSetOwner    bool
	failIntercept   bool
	failDeleteTab   bool
}

func newFakeWindowSystem() *fakeWindowSystem {
	return &fakeWindowSystem{
		windows: make(map[Handle]*fakeWindow),
		nextID:  0x1000,
	}
}

func (f *fakeWindowSystem) addWindow(class string, exStyle uint32) Handle {
	h := f.nextID
	f.nextID++
	f.windows[h] = &fakeWindow{class: class, exStyle: exStyle}
	return h
}

func (f *fakeWindowSystem) ClassName(target Handle) (string, error) {
	if f.failClassName {
		return "", errors.New("simulated class lookup failure")
	}
	w, ok := f.windows[target]
	if !ok {
		return "", fmt.Errorf("no such window %#x", uintptr(target))
	}
	return w.class, nil
}

func (f *fakeWindowSystem) CreateHiddenOwner(className, title string) (Handle, error) {
	if f.failCreateOwner {
		return 0, errors.New("simulated creation failure")
	}
	h := f.nextID
	f.nextID++
	f.windows[h] = &fakeWindow{class: className, title: title}
	f.createdOwners = append(f.createdOwners, h)
	return h, nil
}

func (f *fakeWindowSystem) SetOwner(target, owner Handle) error {
	if f.failSetOwner && owner != 0 {
		return errors.New("simulated set-owner failure")
	}
	w, ok := f.windows[target]
	if !ok {
		return fmt.Errorf("no such window %#x", uintptr(target))
	}
	w.owner = owner
	return nil
}

func (f *fakeWindowSystem) ExStyle(target Handle) (uint32, error) {
	w, ok := f.windows[target]
	if !ok {
		return 0, fmt.Errorf("no such window %#x", uintptr(target))
	}
	return w.exStyle, nil
}

func (f *fakeWindowSystem) SetExStyle(target Handle, style uint32) error {
	w, ok := f.windows[target]
	if !ok {
		return fmt.Errorf("no such window %#x", uintptr(target))
	}
	w.exStyle = style
	return nil
}

func (f *fakeWindowSystem) InterceptDestroy(target Handle, onDestroy func()) (func(), error) {
	if f.failIntercept {
		return nil, errors.New("simulated intercept failure")
	}
	w, ok := f.windows[target]
	if !ok {
		return nil, fmt.Errorf("no such window %#x", uintptr(target))
	}
	w.intercepted = true
	w.onDestroy = onDestroy
	return func() {
		w.intercepted = false
		w.onDestroy = nil
	}, nil
}

func (f *fakeWindowSystem) DestroyWindow(h Handle) error {
	if _, ok := f.windows[h]; !ok {
		return fmt.Errorf("no such window %#x", uintptr(h))
	}
	delete(f.windows, h)
	f.destroyedOwners = append(f.destroyedOwners, h)
	return nil
}

func (f *fakeWindowSystem) DeleteTaskbarTab(target Handle) error {
	if f.failDeleteTab {
		return errors.New("simulated CoCreateInstance failure")
	}
	if _, ok := f.windows[target]; !ok {
		return fmt.Errorf("no such window %#x", uintptr(target))
	}
	return nil
}

func (f *fakeWindowSystem) QuitMessageLoop() {
	f.quitSignals++
}

// destroyTarget simulates the host delivering the destroy notification to the
// intercepted message procedure, then tearing the window down.
func (f *fakeWindowSystem) destroyTarget(target Handle) {
	w := f.windows[target]
	if w != nil && w.onDestroy != nil {
		w.onDestroy()
	}
	delete(f.windows, target)
}

func TestHideCreatesOwnerWithTargetClass(t *testing.T) {
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", ExStyleAppWindow|0x00000200)
	c := New(sys)

	if err := c.Hide(target); err != nil {
		t.Fatalf("Hide failed: %v", err)
	}
	if len(sys.createdOwners) != 1 {
		t.Fatalf("expected 1 hidden owner, got %d", len(sys.createdOwners))
	}
	owner := sys.createdOwners[0]
	if got := sys.windows[owner].class; got != "MainWin" {
		t.Errorf("hidden owner class = %q, want %q", got, "MainWin")
	}
	if got := sys.windows[owner].title; got != DefaultOwnerTitle {
		t.Errorf("hidden owner title = %q, want %q", got, DefaultOwnerTitle)
	}
	if got := sys.windows[target].owner; got != owner {
		t.Errorf("target owner = %#x, want %#x", uintptr(got), uintptr(owner))
	}
	if !sys.windows[target].intercepted {
		t.Error("target message procedure was not intercepted")
	}
	if !c.IsHidden(target) {
		t.Error("IsHidden = false after successful Hide")
	}
}

func TestHideClearsExactlyTaskbarStyleBits(t *testing.T) {
	const unrelated = uint32(0x00000200 | 0x00080000) // WS_EX_CLIENTEDGE | WS_EX_LAYERED
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", ExStyleAppWindow|ExStyleToolWindow|unrelated)
	c := New(sys)

	if err := c.Hide(target); err != nil {
		t.Fatalf("Hide failed: %v", err)
	}
	got := sys.windows[target].exStyle
	if got&ExStyleAppWindow != 0 || got&ExStyleToolWindow != 0 {
		t.Errorf("taskbar style bits not cleared: %#x", got)
	}
	if got&unrelated != unrelated {
		t.Errorf("unrelated style bits changed: got %#x, want them to include %#x", got, unrelated)
	}
}

func TestHideClassLookupFailureCreatesNothing(t *testing.T) {
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", ExStyleAppWindow)
	sys.failClassName = true
	c := New(sys)

	err := c.Hide(target)
	if !errors.Is(err, ErrClassLookup) {
		t.Fatalf("expected ErrClassLookup, got %v", err)
	}
	if len(sys.createdOwners) != 0 {
		t.Errorf("hidden owner created despite class lookup failure")
	}
	if c.IsHidden(target) {
		t.Error("target tracked despite failed Hide")
	}
}

func TestHideCreateOwnerFailure(t *testing.T) {
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", ExStyleAppWindow)
	sys.failCreateOwner = true
	c := New(sys)

	if err := c.Hide(target); !errors.Is(err, ErrCreateOwner) {
		t.Fatalf("expected ErrCreateOwner, got %v", err)
	}
}

func TestHideFailureAfterOwnerCreationDestroysOwner(t *testing.T) {
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", ExStyleAppWindow)
	sys.failSetOwner = true
	c := New(sys)

	if err := c.Hide(target); err == nil {
		t.Fatal("expected Hide to fail")
	}
	if len(sys.createdOwners) != 1 {
		t.Fatalf("expected 1 hidden owner to have been created, got %d", len(sys.createdOwners))
	}
	if len(sys.destroyedOwners) != 1 || sys.destroyedOwners[0] != sys.createdOwners[0] {
		t.Errorf("hidden owner leaked after failed Hide: destroyed %v", sys.destroyedOwners)
	}
	if c.IsHidden(target) {
		t.Error("target tracked despite failed Hide")
	}
}

func TestHideInterceptFailureRestoresStyle(t *testing.T) {
	const before = ExStyleAppWindow | 0x00000200
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", before)
	sys.failIntercept = true
	c := New(sys)

	if err := c.Hide(target); err == nil {
		t.Fatal("expected Hide to fail")
	}
	if got := sys.windows[target].exStyle; got != before {
		t.Errorf("extended style = %#x after failed Hide, want %#x", got, before)
	}
	if got := sys.windows[target].owner; got != 0 {
		t.Errorf("owner relationship = %#x after failed Hide, want cleared", uintptr(got))
	}
	if len(sys.destroyedOwners) != 1 {
		t.Errorf("hidden owner leaked after failed Hide")
	}
}

func TestHideTwiceFails(t *testing.T) {
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", ExStyleAppWindow)
	c := New(sys)

	if err := c.Hide(target); err != nil {
		t.Fatalf("first Hide failed: %v", err)
	}
	if err := c.Hide(target); !errors.Is(err, ErrAlreadyHidden) {
		t.Fatalf("expected ErrAlreadyHidden, got %v", err)
	}
	if len(sys.createdOwners) != 1 {
		t.Errorf("second Hide created another owner")
	}
}

func TestTargetDestroyDestroysOwnerAndQuitsLoop(t *testing.T) {
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", ExStyleAppWindow)
	c := New(sys)

	if err := c.Hide(target); err != nil {
		t.Fatalf("Hide failed: %v", err)
	}
	owner := sys.createdOwners[0]

	sys.destroyTarget(target)

	if _, alive := sys.windows[owner]; alive {
		t.Error("hidden owner window still exists after target destroy")
	}
	if sys.quitSignals != 1 {
		t.Errorf("quit signals = %d, want 1", sys.quitSignals)
	}
	if c.IsHidden(target) {
		t.Error("destroyed target still tracked")
	}
}

func TestRestoreUndoesHide(t *testing.T) {
	const unrelated = uint32(0x00000200)
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", ExStyleAppWindow|unrelated)
	c := New(sys)

	if err := c.Hide(target); err != nil {
		t.Fatalf("Hide failed: %v", err)
	}
	if err := c.Restore(target); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	w := sys.windows[target]
	if w.exStyle != ExStyleAppWindow|unrelated {
		t.Errorf("extended style = %#x after Restore, want %#x", w.exStyle, ExStyleAppWindow|unrelated)
	}
	if w.owner != 0 {
		t.Errorf("owner relationship = %#x after Restore, want cleared", uintptr(w.owner))
	}
	if w.intercepted {
		t.Error("message procedure still intercepted after Restore")
	}
	if len(sys.destroyedOwners) != 1 {
		t.Error("hidden owner not destroyed by Restore")
	}
	if c.IsHidden(target) {
		t.Error("target still tracked after Restore")
	}
}

func TestRestoreUnknownTarget(t *testing.T) {
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", 0)
	c := New(sys)

	if err := c.Restore(target); !errors.Is(err, ErrNotHidden) {
		t.Fatalf("expected ErrNotHidden, got %v", err)
	}
}

func TestHideFromTaskbarListUnavailable(t *testing.T) {
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", ExStyleAppWindow)
	sys.failDeleteTab = true
	c := New(sys)

	if err := c.HideFromTaskbarList(target); !errors.Is(err, ErrTaskbarList) {
		t.Fatalf("expected ErrTaskbarList, got %v", err)
	}
	if len(sys.createdOwners) != 0 {
		t.Error("taskbar-list path created a hidden owner")
	}
}

func TestMultipleTargetsTrackedIndependently(t *testing.T) {
	sys := newFakeWindowSystem()
	a := sys.addWindow("MainWin", ExStyleAppWindow)
	b := sys.addWindow("ToolWin", ExStyleToolWindow)
	c := New(sys)

	if err := c.Hide(a); err != nil {
		t.Fatalf("Hide(a) failed: %v", err)
	}
	if err := c.Hide(b); err != nil {
		t.Fatalf("Hide(b) failed: %v", err)
	}
	if len(sys.createdOwners) != 2 {
		t.Fatalf("expected 2 hidden owners, got %d", len(sys.createdOwners))
	}
	if got := c.Hidden(); len(got) != 2 {
		t.Fatalf("Hidden() = %v, want both targets", got)
	}

	// Destroying one target must not disturb the other's tracking.
	sys.destroyTarget(a)
	if c.IsHidden(a) {
		t.Error("destroyed target a still tracked")
	}
	if !c.IsHidden(b) {
		t.Error("target b lost its tracking when a was destroyed")
	}
	ownerB := sys.createdOwners[1]
	if _, alive := sys.windows[ownerB]; !alive {
		t.Error("target b's hidden owner was destroyed with target a")
	}
}

func TestWithOwnerTitle(t *testing.T) {
	sys := newFakeWindowSystem()
	target := sys.addWindow("MainWin", 0)
	c := New(sys, WithOwnerTitle("invisible anchor"))

	if err := c.Hide(target); err != nil {
		t.Fatalf("Hide failed: %v", err)
	}
	if got := sys.windows[sys.createdOwners[0]].title; got != "invisible anchor" {
		t.Errorf("owner title = %q, want %q", got, "invisible anchor")
	}
}
