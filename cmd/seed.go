package cmd

import (
	"github.com/sprintburn/sprintburn/core"
	"github.com/spf13/cobra"
)

// seedCmd loads sprints, backlog items and snapshots from a YAML file.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sprints, backlog items and snapshots from a YAML file.",
	Long: `Load a YAML seed file into the store.

The file holds a list of sprints, each with its window, backlog items and
optional historical snapshots:

  sprints:
    - number: 7
      start: 2024-06-03
      end: 2024-06-14
      backlog:
        - id: PROJ-1
          title: Login page
          status: To Do
          estimate: 5
      snapshots:
        - date: 2024-06-03
          points: 27

Examples:
  sprintburn seed --file sprint7.yaml`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteSeed, "Cannot seed store"),
}
