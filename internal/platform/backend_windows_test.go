//go:build windows

package platform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/1broseidon/taskveil/internal/taskbar"
)

func TestAutoFallsBackOnlyWhenOwnerCreationFails(t *testing.T) {
	wrap := func(sentinel error) error {
		return fmt.Errorf("window %#x: %w", uintptr(0x2a), sentinel)
	}

	if !autoFallsBack(wrap(taskbar.ErrCreateOwner)) {
		t.Error("owner creation failure should fall back to the taskbar list")
	}
	if autoFallsBack(wrap(taskbar.ErrAlreadyHidden)) {
		t.Error("double hide must surface ErrAlreadyHidden, not silently retry")
	}
	if autoFallsBack(wrap(taskbar.ErrClassLookup)) {
		t.Error("class lookup failure must not fall back")
	}
	if autoFallsBack(errors.New("unrelated")) {
		t.Error("unrelated errors must not fall back")
	}
}
