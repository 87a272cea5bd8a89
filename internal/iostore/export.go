package iostore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/internal/parquet"
	"github.com/sprintburn/sprintburn/schema"
)

// ExecuteExport exports every sprint, backlog item and snapshot of the store to
// three Parquet files named after outputFile.
func ExecuteExport(ctx context.Context, w io.Writer, store contract.SprintStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalSprints == 0 {
		return errors.New("no sprint data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)

	sprints, err := store.ListSprints(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve sprints: %w", err)
	}

	var items []schema.BacklogItem
	var snapshots []schema.Snapshot
	for _, sprint := range sprints {
		sprintItems, err := store.FetchBacklogItems(ctx, sprint.SprintID)
		if err != nil {
			return fmt.Errorf("failed to retrieve backlog of sprint %d: %w", sprint.SprintID, err)
		}
		items = append(items, sprintItems...)

		sprintSnapshots, err := store.FetchDailySnapshots(ctx, sprint.SprintID)
		if err != nil {
			return fmt.Errorf("failed to retrieve snapshots of sprint %d: %w", sprint.SprintID, err)
		}
		snapshots = append(snapshots, sprintSnapshots...)
	}

	sprintsFile := outputFile + ".sprints.parquet"
	if err := parquet.WriteSprintsParquet(parquet.ConvertSprints(sprints), sprintsFile); err != nil {
		return fmt.Errorf("failed to write sprints: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d sprints to: %s\n", len(sprints), sprintsFile)

	backlogFile := outputFile + ".backlog_items.parquet"
	if err := parquet.WriteBacklogItemsParquet(parquet.ConvertBacklogItems(items), backlogFile); err != nil {
		return fmt.Errorf("failed to write backlog items: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d backlog items to: %s\n", len(items), backlogFile)

	snapshotsFile := outputFile + ".daily_snapshots.parquet"
	if err := parquet.WriteDailySnapshotsParquet(parquet.ConvertSnapshots(snapshots), snapshotsFile); err != nil {
		return fmt.Errorf("failed to write snapshots: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d snapshots to: %s\n", len(snapshots), snapshotsFile)

	return nil
}
