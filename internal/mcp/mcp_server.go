// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sprintburn/sprintburn/internal/contract"
)

// Option configures the burndown MCP server.
type Option func(*toolHandler)

// WithClock replaces the wall clock used to resolve today on each tool call.
func WithClock(now func() time.Time) Option {
	return func(h *toolHandler) { h.now = now }
}

// NewMCPServer initializes and configures the burndown MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, opts ...Option) *server.MCPServer {
	s := server.NewMCPServer(
		"Sprint Burndown Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	// --- 1. Tool: get_burndown ---
	s.AddTool(mcp.NewTool("get_burndown",
		mcp.WithDescription("Compute the burndown dataset (actual and guideline series) of a sprint without recording anything."),
		mcp.WithNumber("sprint", mcp.Description("Sprint number (defaults to the latest sprint).")),
		mcp.WithString("include_weekends", mcp.Description("Plot weekends as days (yes/no). Defaults to the server configuration.")),
		mcp.WithString("today", mcp.Description("Override the current day (YYYY-MM-DD).")),
	), h.handleGetBurndown)

	// --- 2. Tool: get_sprint ---
	s.AddTool(mcp.NewTool("get_sprint",
		mcp.WithDescription("Return the window of a sprint, or list every sprint when list is true."),
		mcp.WithNumber("sprint", mcp.Description("Sprint number (defaults to the latest sprint).")),
		mcp.WithBoolean("list", mcp.Description("Return all sprints instead of one.")),
	), h.handleGetSprint)

	// --- 3. Tool: get_remaining_points ---
	s.AddTool(mcp.NewTool("get_remaining_points",
		mcp.WithDescription("Sum the estimates of the unresolved backlog items of a sprint."),
		mcp.WithNumber("sprint", mcp.Description("Sprint number (defaults to the latest sprint).")),
		mcp.WithString("status_exclude", mcp.Description("Regular expression of resolved statuses (e.g. '^(Done|Closed)').")),
	), h.handleGetRemainingPoints)

	return s
}

// StartMCPServer starts the burndown MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
