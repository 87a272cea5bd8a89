// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/sprintburn/sprintburn/schema"
)

// ErrSprintNotFound is returned when the requested sprint does not exist.
var ErrSprintNotFound = errors.New("sprint not found")

// StoreManager defines the interface for managing sprint stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetSprintStore() SprintStore
}

// SprintStore is the task-tracking data source: sprint metadata, backlog and daily snapshots.
type SprintStore interface {
	// --- Sprints ---

	// FetchSprintWindow returns the sprint with the given number. Zero means the latest sprint.
	FetchSprintWindow(ctx context.Context, sprintID int) (schema.SprintWindow, error)

	// ListSprints returns all sprints ordered by descending number.
	ListSprints(ctx context.Context) ([]schema.SprintWindow, error)

	// UpsertSprint creates or replaces a sprint window.
	UpsertSprint(ctx context.Context, window schema.SprintWindow) error

	// --- Backlog ---

	// FetchBacklogItems returns every backlog item of a sprint.
	FetchBacklogItems(ctx context.Context, sprintID int) ([]schema.BacklogItem, error)

	// AddBacklogItem creates or replaces a backlog item.
	AddBacklogItem(ctx context.Context, item schema.BacklogItem) error

	// --- Snapshots ---

	// FetchDailySnapshots returns the snapshots of a sprint in insertion order.
	FetchDailySnapshots(ctx context.Context, sprintID int) ([]schema.Snapshot, error)

	// RecordDailySnapshot appends a snapshot. It is not idempotent: reruns add duplicates.
	RecordDailySnapshot(ctx context.Context, sprintID int, date time.Time, points float64) error

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// ChartRenderer turns a burndown report into chart artifacts and returns their paths.
type ChartRenderer interface {
	RenderBurndown(report schema.BurndownReport, now time.Time) ([]string, error)
}
