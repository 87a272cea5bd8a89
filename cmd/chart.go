package cmd

import (
	"github.com/sprintburn/sprintburn/core"
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/internal/outwriter"
	"github.com/spf13/cobra"
)

// chartCmd records today's snapshot and draws the burndown chart.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Record today's remaining points and draw the burndown chart.",
	Long: `Record the remaining story points for today and render the sprint burndown.

Each run:
- Sums the estimates of backlog items whose status is not excluded
- Stores that total as today's snapshot (first write of the day wins)
- Fills missing days, drops weekends when asked, and builds the ideal guideline
- Writes an HTML chart to the chart directory, plus a "latest" copy
- Prints the day-by-day table and whether the team is ahead or behind

Examples:
  # Chart the latest sprint
  sprintburn chart

  # Chart sprint 7 on working days only, without recording
  sprintburn chart --sprint 7 --include-weekends no --record no

  # Render into a shared folder and export gauges for node_exporter
  sprintburn chart --chart-dir /var/www/burndown --metrics-file /var/lib/node_exporter/sprintburn.prom`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		renderer := outwriter.NewHTMLChartRenderer(cfg.ChartDir)
		if err := core.ExecuteBurndownChart(rootCtx, cfg, storeManager, renderer); err != nil {
			contract.LogFatal("Cannot draw burndown chart", err)
		}
	},
}

// datasetCmd prints the chart dataset without recording or rendering.
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Print the burndown dataset without recording anything.",
	Long: `Build the burndown dataset from stored snapshots and print it.

Nothing is written to the store. Use this to inspect the numbers behind a chart
or to feed them into another tool.

Examples:
  # Show the dataset for the latest sprint
  sprintburn dataset

  # Export sprint 6 as JSON for a dashboard
  sprintburn dataset --sprint 6 --output json --output-file sprint6.json`,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteShowDataset, "Cannot build burndown dataset"),
}
