package mcp

// WindowInfo describes one top-level window.
type WindowInfo struct {
	ID     uint64 `json:"id"`
	Title  string `json:"title"`
	Class  string `json:"class,omitempty"`
	PID    int    `json:"pid,omitempty"`
	Hidden bool   `json:"hidden"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	TitleContains string `json:"title_contains,omitempty" jsonschema:"Optional case-insensitive substring filter on window titles"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// HideWindowInput is the input for the hide_window tool.
type HideWindowInput struct {
	ID    uint64 `json:"id,omitempty" jsonschema:"Window ID from list_windows. Either id or title must be set."`
	Title string `json:"title,omitempty" jsonschema:"Title substring; the first visible window whose title contains it is hidden. Either id or title must be set."`
}

// HideWindowOutput is the output for the hide_window tool.
type HideWindowOutput struct {
	ID    uint64 `json:"id"`
	Title string `json:"title,omitempty"`
}

// RestoreWindowInput is the input for the restore_window tool.
type RestoreWindowInput struct {
	ID uint64 `json:"id" jsonschema:"required,Window ID to list in the taskbar again"`
}

// RestoreWindowOutput is the output for the restore_window tool.
type RestoreWindowOutput struct {
	ID uint64 `json:"id"`
}
