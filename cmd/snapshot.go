package cmd

import (
	"github.com/sprintburn/sprintburn/core"
	"github.com/spf13/cobra"
)

// snapshotCmd groups daily snapshot management.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record and inspect daily remaining points",
	Long: `Record and inspect the daily remaining-points snapshots of a sprint.

The first snapshot written for a day is the one the chart uses.

Subcommands:
  record - Store today's remaining points
  list   - Show stored snapshots in the order they were written`,
}

// snapshotRecordCmd stores today's snapshot.
var snapshotRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Store today's remaining points",
	Long: `Store the remaining points for today.

Without --points the total is computed from the backlog.

Examples:
  # Record from the backlog
  sprintburn snapshot record --sprint 7

  # Backfill a missed day
  sprintburn snapshot record --sprint 7 --today 2024-06-05 --points 21`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteRecordSnapshot, "Cannot record snapshot"),
}

// snapshotListCmd lists stored snapshots.
var snapshotListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show stored snapshots",
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteListSnapshots, "Cannot list snapshots"),
}
