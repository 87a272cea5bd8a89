// Package cmd defines the command-line interface for sprintburn.
package cmd

import (
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(sprintCmd)
	rootCmd.AddCommand(backlogCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	sprintCmd.AddCommand(sprintAddCmd)
	sprintCmd.AddCommand(sprintListCmd)

	backlogCmd.AddCommand(backlogAddCmd)
	backlogCmd.AddCommand(backlogListCmd)

	snapshotCmd.AddCommand(snapshotRecordCmd)
	snapshotCmd.AddCommand(snapshotListCmd)

	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string (sqlite file path, or e.g. user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().IntP("sprint", "s", 0, "Sprint number (0 = latest sprint)")
	rootCmd.PersistentFlags().String("include-weekends", "yes", "Keep Saturdays and Sundays on the chart axis (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("status-exclude", contract.DefaultStatusExclude, "Regex of backlog statuses that no longer count as remaining work")
	rootCmd.PersistentFlags().String("timezone", contract.DefaultTimezone, "IANA timezone used to decide dates and weekends")
	rootCmd.PersistentFlags().String("today", "", "Override today's date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("zero-workdays", string(schema.ZeroWorkdaysError), "Policy for sprints without working days: error or flat")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", string(schema.TextLog), "Log format: text or json")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of chartCmd to Viper
	chartCmd.Flags().String("chart-dir", contract.DefaultChartDir, "Directory for the rendered HTML charts")
	chartCmd.Flags().String("record", "yes", "Record today's remaining points before drawing (yes/no)")
	chartCmd.Flags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")
	if err := viper.BindPFlags(chartCmd.Flags()); err != nil {
		contract.LogFatal("Error binding chart flags", err)
	}

	// Bind all flags of sprintAddCmd to Viper
	sprintAddCmd.Flags().String("start", "", "First day of the sprint (YYYY-MM-DD)")
	sprintAddCmd.Flags().String("end", "", "Last day of the sprint (YYYY-MM-DD)")
	if err := viper.BindPFlags(sprintAddCmd.Flags()); err != nil {
		contract.LogFatal("Error binding sprint add flags", err)
	}

	// Bind all flags of backlogAddCmd to Viper
	backlogAddCmd.Flags().String("id", "", "Item identifier (generated when empty)")
	backlogAddCmd.Flags().String("title", "", "Item title")
	backlogAddCmd.Flags().String("status", "", "Workflow status (default \"To Do\")")
	backlogAddCmd.Flags().String("estimate", "", "Story point estimate (empty = unestimated)")
	if err := viper.BindPFlags(backlogAddCmd.Flags()); err != nil {
		contract.LogFatal("Error binding backlog add flags", err)
	}

	// Bind all flags of snapshotRecordCmd to Viper
	snapshotRecordCmd.Flags().String("points", "", "Remaining points to record (default: computed from the backlog)")
	if err := viper.BindPFlags(snapshotRecordCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshot record flags", err)
	}

	// Bind all flags of seedCmd to Viper
	seedCmd.Flags().String("file", "", "YAML seed file with sprints, backlog items and snapshots")
	if err := viper.BindPFlags(seedCmd.Flags()); err != nil {
		contract.LogFatal("Error binding seed flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
