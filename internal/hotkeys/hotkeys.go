//go:build linux || windows || darwin

// Package hotkeys registers the global shortcut that toggles taskbar
// visibility of the active window.
package hotkeys

import (
	"errors"
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// ErrInvalid is returned when a hotkey string cannot be parsed.
var ErrInvalid = errors.New("invalid hotkey combination")

// ErrConflict is returned when the combination is taken by another application.
var ErrConflict = errors.New("hotkey already registered by another application")

var keyMap = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"tab":    hotkey.KeyTab,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"a":      hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

// Parse converts a combo string like "ctrl+shift+h" into hotkey modifiers
// and a key. Modifier names are platform-specific; see modMap.
func Parse(combo string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("%w: %q (need at least one modifier)", ErrInvalid, combo)
	}
	keyPart := parts[len(parts)-1]
	modParts := parts[:len(parts)-1]

	key, ok := keyMap[keyPart]
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown key %q", ErrInvalid, keyPart)
	}

	var mods []hotkey.Modifier
	seen := make(map[hotkey.Modifier]bool)
	for _, m := range modParts {
		mod, ok := modMap[m]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown modifier %q", ErrInvalid, m)
		}
		if seen[mod] {
			continue
		}
		seen[mod] = true
		mods = append(mods, mod)
	}
	return mods, key, nil
}

// Handler owns one registered global hotkey.
type Handler struct {
	hk *hotkey.Hotkey
}

// Register parses and registers the combo. The returned handler's Keydown
// channel fires on every press.
func Register(combo string) (*Handler, error) {
	mods, key, err := Parse(combo)
	if err != nil {
		return nil, err
	}
	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		// Drop OS-level state from hotkey.New before abandoning the object.
		_ = hk.Unregister()
		return nil, fmt.Errorf("%w: %q", ErrConflict, combo)
	}
	return &Handler{hk: hk}, nil
}

// Keydown returns the press event channel.
func (h *Handler) Keydown() <-chan hotkey.Event {
	return h.hk.Keydown()
}

// Unregister releases the hotkey.
func (h *Handler) Unregister() error {
	if h == nil || h.hk == nil {
		return nil
	}
	return h.hk.Unregister()
}
