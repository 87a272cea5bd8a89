package cmd

import (
	"github.com/sprintburn/sprintburn/core"
	"github.com/spf13/cobra"
)

// backlogCmd groups backlog item management.
var backlogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "Manage sprint backlog items",
	Long: `Manage the items whose estimates make up a sprint's remaining points.

Items with a status matching --status-exclude (Done, Closed, Resolved by default)
no longer count. Items without an estimate count as zero.

Subcommands:
  add  - Create or update a backlog item
  list - Show the backlog and the points still remaining`,
}

// backlogAddCmd creates or updates a backlog item.
var backlogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create or update a backlog item",
	Long: `Store a backlog item for a sprint.

Re-using an --id updates that item, which is how an item is moved to Done.

Examples:
  # Add an estimated item to sprint 7
  sprintburn backlog add --sprint 7 --id PROJ-12 --title "Login page" --estimate 5

  # Mark it as done
  sprintburn backlog add --sprint 7 --id PROJ-12 --title "Login page" --estimate 5 --status Done`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteAddBacklogItem, "Cannot add backlog item"),
}

// backlogListCmd lists backlog items with the remaining total.
var backlogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the backlog and the points still remaining",
	Long: `List the backlog items of a sprint and sum the points still remaining.

Examples:
  sprintburn backlog list --sprint 7
  sprintburn backlog list --status-exclude "^(Done|Won't Do)$" --output csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteListBacklog, "Cannot list backlog"),
}
