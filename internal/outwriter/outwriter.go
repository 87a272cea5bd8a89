// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteBurndown prints a burndown report using the configured output format.
func (ow *OutWriter) WriteBurndown(report schema.BurndownReport, cfg *contract.Config, duration time.Duration) error {
	return PrintBurndownReport(report, cfg, duration)
}

// WriteSprints prints the known sprint windows using the configured output format.
func (ow *OutWriter) WriteSprints(sprints []schema.SprintWindow, cfg *contract.Config) error {
	return PrintSprints(sprints, cfg)
}

// WriteBacklog prints the backlog of a sprint and its remaining points.
func (ow *OutWriter) WriteBacklog(items []schema.BacklogItem, remaining schema.RemainingPoints, cfg *contract.Config) error {
	return PrintBacklog(items, remaining, cfg)
}

// WriteSnapshots prints the recorded snapshots of a sprint.
func (ow *OutWriter) WriteSnapshots(snapshots []schema.Snapshot, cfg *contract.Config) error {
	return PrintSnapshots(snapshots, cfg)
}
