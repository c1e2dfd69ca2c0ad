// Package mcp exposes taskbar visibility control as MCP tools, so agents and
// editors can hide, restore and inspect windows over the stdio transport.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/taskveil/internal/audit"
	"github.com/1broseidon/taskveil/internal/platform"
)

const (
	ServerName    = "taskveil"
	ServerVersion = "0.1.0"
)

// Server is the MCP server over a taskbar backend.
type Server struct {
	mcpServer *mcpsdk.Server
	backend   platform.Backend
	logger    *audit.Logger
}

// NewServer creates an MCP server on top of an existing backend. The audit
// logger may be nil.
func NewServer(backend platform.Backend, logger *audit.Logger) *Server {
	s := &Server{
		backend: backend,
		logger:  logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases server resources.
func (s *Server) Close() error {
	if s == nil || s.logger == nil {
		return nil
	}
	return s.logger.Close()
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List visible top-level windows with their ID, title, window class and process ID. Window IDs from this list are the handles accepted by hide_window and restore_window.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hide_window",
		Description: "Remove a window from the taskbar. The window stays open and focusable; only its taskbar entry disappears. Pass either the window ID or a title substring (first match wins).",
	}, s.handleHideWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "List a previously hidden window in the taskbar again. Pass the window ID returned by list_windows or hide_window.",
	}, s.handleRestoreWindow)
}
