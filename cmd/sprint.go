package cmd

import (
	"github.com/sprintburn/sprintburn/core"
	"github.com/spf13/cobra"
)

// sprintCmd groups sprint window management.
var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Manage sprint windows",
	Long: `Manage the start and end dates of sprints.

Subcommands:
  add  - Create or update a sprint window
  list - Show all sprint windows, newest first

Examples:
  sprintburn sprint add --sprint 7 --start 2024-06-03 --end 2024-06-14
  sprintburn sprint list`,
}

// sprintAddCmd creates or updates a sprint window.
var sprintAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create or update a sprint window",
	Long: `Store the start and end dates for a sprint.

Adding a sprint that already exists replaces its dates.

Examples:
  sprintburn sprint add --sprint 7 --start 2024-06-03 --end 2024-06-14`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteAddSprint, "Cannot add sprint"),
}

// sprintListCmd lists sprint windows.
var sprintListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all sprint windows",
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteListSprints, "Cannot list sprints"),
}
