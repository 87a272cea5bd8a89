// Package core has the burndown engine and the operations that drive it.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/internal/metrics"
	"github.com/sprintburn/sprintburn/internal/outwriter"
	"github.com/sprintburn/sprintburn/schema"
)

// ExecutorFunc defines the function signature shared by the store-backed commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// errNoStore is returned when the store manager has no open store.
var errNoStore = errors.New("sprint store is not initialized")

// run carries what one operation resolved up front.
type run struct {
	cfg    *contract.Config
	store  contract.SprintStore
	cal    Calendar
	today  time.Time
	window schema.SprintWindow
	log    *slog.Logger
}

// newRun builds the calendar, resolves today and reads the sprint window.
func newRun(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*run, error) {
	store, err := storeOf(mgr)
	if err != nil {
		return nil, err
	}

	cal := NewCalendar(cfg.Location)
	today := cfg.Today
	if today.IsZero() {
		today = cal.Today(time.Now())
	}

	window, err := store.FetchSprintWindow(ctx, cfg.SprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprint window: %w", err)
	}

	log := cfg.Log().With("sprint", window.SprintID)
	log.Debug("found sprint", "start", schema.FormatDate(window.Start), "end", schema.FormatDate(window.End))

	return &run{cfg: cfg, store: store, cal: cal, today: today, window: window, log: log}, nil
}

// remainingPoints counts the unresolved backlog points of the sprint.
func (r *run) remainingPoints(ctx context.Context) (schema.RemainingPoints, error) {
	items, err := r.store.FetchBacklogItems(ctx, r.window.SprintID)
	if err != nil {
		return schema.RemainingPoints{}, fmt.Errorf("failed to read backlog: %w", err)
	}
	remaining := CountRemainingPoints(r.window.SprintID, items, r.cfg.StatusExclude)
	r.log.Info("counted remaining points",
		"points", remaining.Points, "counted", remaining.Counted,
		"excluded", remaining.Excluded, "unestimated", remaining.Unestimated)
	return remaining, nil
}

// recordToday stores today's snapshot. An explicit point value wins over the backlog count.
// Days before the sprint start are skipped so the series stays valid.
func (r *run) recordToday(ctx context.Context) (recorded bool, points float64, err error) {
	if r.cal.DaysBetween(r.window.Start, r.today) < 0 {
		r.log.Warn("not recording a snapshot before the sprint starts",
			"today", schema.FormatDate(r.today), "start", schema.FormatDate(r.window.Start))
		return false, 0, nil
	}

	if r.cfg.SnapshotPoints != nil {
		points = *r.cfg.SnapshotPoints
	} else {
		remaining, err := r.remainingPoints(ctx)
		if err != nil {
			return false, 0, err
		}
		points = remaining.Points
	}

	if err := r.store.RecordDailySnapshot(ctx, r.window.SprintID, r.today, points); err != nil {
		return false, 0, fmt.Errorf("failed to record snapshot: %w", err)
	}
	r.log.Info("recorded snapshot", "date", schema.FormatDate(r.today), "points", points)
	return true, points, nil
}

// report reads the snapshots and assembles the burndown report.
func (r *run) report(ctx context.Context) (schema.BurndownReport, error) {
	snapshots, err := r.store.FetchDailySnapshots(ctx, r.window.SprintID)
	if err != nil {
		return schema.BurndownReport{}, fmt.Errorf("failed to read snapshots: %w", err)
	}

	assembly, err := AssembleDataset(r.cal, AssembleInput{
		Window:          r.window,
		Snapshots:       snapshots,
		Today:           r.today,
		IncludeWeekends: r.cfg.IncludeWeekends,
		ZeroWorkdays:    r.cfg.ZeroWorkdays,
	})
	if err != nil {
		return schema.BurndownReport{}, fmt.Errorf("failed to build burndown of sprint %d: %w", r.window.SprintID, err)
	}
	for _, w := range assembly.Warnings {
		r.log.Warn("duplicate snapshot", "date", schema.FormatDate(w.Date), "day", w.Offset, "kept", w.Kept, "ignored", w.Ignored)
	}

	return schema.BurndownReport{
		Sprint:          r.window,
		Dataset:         assembly.Dataset,
		WorkingDays:     assembly.WorkingDays,
		IncludeWeekends: r.cfg.IncludeWeekends,
		Pace:            ComputePace(assembly.Dataset),
		Today:           r.today,
		Duplicates:      len(assembly.Warnings),
	}, nil
}

// GetBurndownReport computes the burndown of the configured sprint without writing anything.
func GetBurndownReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.BurndownReport, time.Duration, error) {
	start := time.Now()
	r, err := newRun(ctx, cfg, mgr)
	if err != nil {
		return schema.BurndownReport{}, 0, err
	}
	report, err := r.report(ctx)
	if err != nil {
		return schema.BurndownReport{}, 0, err
	}
	return report, time.Since(start), nil
}

// ExecuteShowDataset computes the burndown and prints it. Nothing is recorded or rendered.
func ExecuteShowDataset(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	report, duration, err := GetBurndownReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteBurndown(report, cfg, duration)
}

// ExecuteRecordSnapshot records today's remaining points for the configured sprint.
func ExecuteRecordSnapshot(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	r, err := newRun(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	recorded, points, err := r.recordToday(ctx)
	if err != nil {
		return err
	}
	if recorded {
		fmt.Printf("Recorded %g points for sprint %d on %s\n", points, r.window.SprintID, schema.FormatDate(r.today))
	}
	return nil
}

// ExecuteBurndownChart runs the full burndown: record today's snapshot, assemble the
// dataset, render the charts, print the dataset and export metrics when configured.
func ExecuteBurndownChart(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, renderer contract.ChartRenderer) error {
	start := time.Now()
	runCfg := cfg.Clone()
	runCfg.Logger = cfg.Log().With("run_id", uuid.NewString())

	r, err := newRun(ctx, runCfg, mgr)
	if err != nil {
		return err
	}

	if runCfg.Record {
		if _, _, err := r.recordToday(ctx); err != nil {
			return err
		}
	}

	report, err := r.report(ctx)
	if err != nil {
		return err
	}

	if renderer != nil {
		paths, err := renderer.RenderBurndown(report, time.Now())
		if err != nil {
			return err
		}
		r.log.Info("generated chart", "files", paths)
	}

	if runCfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(runCfg.MetricsFile, report); err != nil {
			return err
		}
		r.log.Info("wrote metrics", "file", runCfg.MetricsFile)
	}

	return outwriter.NewOutWriter().WriteBurndown(report, runCfg, time.Since(start))
}
