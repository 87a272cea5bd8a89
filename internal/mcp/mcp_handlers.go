package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sprintburn/sprintburn/core"
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	now     func() time.Time
}

type sprintView struct {
	SprintID int    `json:"sprint_id"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

type burndownView struct {
	Sprint          sprintView `json:"sprint"`
	WorkingDays     int        `json:"working_days"`
	IncludeWeekends bool       `json:"include_weekends"`
	Pace            string     `json:"pace"`
	Today           string     `json:"today"`
	Duplicates      int        `json:"duplicate_snapshots"`
	Labels          []int      `json:"labels"`
	Dates           []string   `json:"dates"`
	Actual          []float64  `json:"actual"`
	Ideal           []float64  `json:"ideal"`
}

func toSprintView(w schema.SprintWindow) sprintView {
	return sprintView{SprintID: w.SprintID, Start: schema.FormatDate(w.Start), End: schema.FormatDate(w.End)}
}

// sprintConfig clones the base config, resolves today for this call unless
// it was pinned at startup, and applies the sprint argument.
func (h *toolHandler) sprintConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if !cfg.TodayPinned {
		cfg.Today = core.NewCalendar(cfg.Location).Today(h.now())
	}
	if s := request.GetInt("sprint", 0); s != 0 {
		if s < 0 {
			return nil, fmt.Errorf("sprint must be positive, got %d", s)
		}
		cfg.SprintID = s
	}
	return cfg, nil
}

func (h *toolHandler) handleGetBurndown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.sprintConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if v := request.GetString("include_weekends", ""); v != "" {
		include, err := contract.ParseBoolString(v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
		cfg.IncludeWeekends = include
	}
	if v := request.GetString("today", ""); v != "" {
		today, err := contract.ParseDateIn(v, cfg.Location)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
		cfg.Today = today
	}

	report, _, err := core.GetBurndownReport(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("burndown failed: %v", err)), nil
	}

	ds := report.Dataset
	dates := make([]string, len(ds.Dates))
	for i, d := range ds.Dates {
		dates[i] = schema.FormatDate(d)
	}
	view := burndownView{
		Sprint:          toSprintView(report.Sprint),
		WorkingDays:     report.WorkingDays,
		IncludeWeekends: report.IncludeWeekends,
		Pace:            contract.GetPlainPace(report.Pace),
		Today:           schema.FormatDate(report.Today),
		Duplicates:      report.Duplicates,
		Labels:          ds.Labels,
		Dates:           dates,
		Actual:          ds.Actual,
		Ideal:           ds.Ideal,
	}
	jsonData, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSprint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.sprintConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	if request.GetBool("list", false) {
		if h.mgr == nil || h.mgr.GetSprintStore() == nil {
			return mcp.NewToolResultError("sprint lookup failed: sprint store is not initialized"), nil
		}
		sprints, err := h.mgr.GetSprintStore().ListSprints(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("sprint lookup failed: %v", err)), nil
		}
		views := make([]sprintView, 0, len(sprints))
		for _, s := range sprints {
			views = append(views, toSprintView(s))
		}
		jsonData, _ := json.MarshalIndent(views, "", "  ")
		return mcp.NewToolResultText(string(jsonData)), nil
	}

	window, err := core.GetSprintWindow(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sprint lookup failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(toSprintView(window), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRemainingPoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.sprintConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if p := request.GetString("status_exclude", ""); p != "" {
		re, err := regexp.Compile(p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid status_exclude pattern: %v", err)), nil
		}
		cfg.StatusExclude = re
	}

	_, remaining, err := core.GetRemainingPoints(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("backlog lookup failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(remaining, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
