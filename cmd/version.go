package cmd

import (
	"runtime"

	"github.com/sprintburn/sprintburn/internal/iostore"
	"github.com/spf13/cobra"
)

// versionCmd prints build details and the store schema version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build and schema version details.",
	Long: `Print the release, commit, build time and Go runtime of this binary.

The schema line is the migration version "store migrate" upgrades to. Include
this output when reporting a bug.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("sprintburn %s (%s, built %s)\n", version, commit, date)
		cmd.Printf("  go:     %s\n", runtime.Version())
		cmd.Printf("  schema: v%d\n", iostore.SchemaVersion)
	},
}
