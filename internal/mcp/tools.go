package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/taskveil/internal/audit"
	"github.com/1broseidon/taskveil/internal/platform"
)

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.backend.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("list windows: %w", err)
	}

	hidden := make(map[platform.WindowID]bool)
	for _, id := range s.backend.HiddenWindows() {
		hidden[id] = true
	}

	filter := strings.ToLower(args.TitleContains)
	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(windows))}
	for _, w := range windows {
		if filter != "" && !strings.Contains(strings.ToLower(w.Title), filter) {
			continue
		}
		out.Windows = append(out.Windows, WindowInfo{
			ID:     uint64(w.ID),
			Title:  w.Title,
			Class:  w.Class,
			PID:    w.PID,
			Hidden: hidden[w.ID],
		})
	}
	return nil, out, nil
}

func (s *Server) handleHideWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args HideWindowInput) (*mcpsdk.CallToolResult, HideWindowOutput, error) {
	if args.ID == 0 && args.Title == "" {
		return nil, HideWindowOutput{}, fmt.Errorf("either id or title must be set")
	}

	id := platform.WindowID(args.ID)
	title := ""
	if args.ID == 0 {
		w, err := findByTitle(s.backend, args.Title)
		if err != nil {
			return nil, HideWindowOutput{}, err
		}
		id = w.ID
		title = w.Title
	}

	if err := s.backend.Hide(id); err != nil {
		if s.logger != nil {
			s.logger.Log(audit.ActionHideFailed, uintptr(id), map[string]interface{}{
				"error": err.Error(), "via": "mcp",
			})
		}
		return nil, HideWindowOutput{}, fmt.Errorf("hide window %#x: %w", uintptr(id), err)
	}
	if s.logger != nil {
		s.logger.Log(audit.ActionHide, uintptr(id), map[string]interface{}{
			"title": title, "via": "mcp",
		})
	}
	return nil, HideWindowOutput{ID: uint64(id), Title: title}, nil
}

func (s *Server) handleRestoreWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args RestoreWindowInput) (*mcpsdk.CallToolResult, RestoreWindowOutput, error) {
	if args.ID == 0 {
		return nil, RestoreWindowOutput{}, fmt.Errorf("id must be set")
	}
	id := platform.WindowID(args.ID)
	if err := s.backend.Restore(id); err != nil {
		return nil, RestoreWindowOutput{}, fmt.Errorf("restore window %#x: %w", uintptr(id), err)
	}
	if s.logger != nil {
		s.logger.Log(audit.ActionRestore, uintptr(id), map[string]interface{}{"via": "mcp"})
	}
	return nil, RestoreWindowOutput{ID: uint64(id)}, nil
}

// findByTitle returns the first window whose title contains the given
// substring, case-insensitively.
func findByTitle(backend platform.Backend, title string) (platform.Window, error) {
	windows, err := backend.ListWindows()
	if err != nil {
		return platform.Window{}, fmt.Errorf("list windows: %w", err)
	}
	needle := strings.ToLower(title)
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), needle) {
			return w, nil
		}
	}
	return platform.Window{}, fmt.Errorf("no window with title containing %q: %w", title, platform.ErrWindowNotFound)
}
