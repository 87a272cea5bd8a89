// Package parquet provides data structures and functions for exporting sprint
// burndown data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/sprintburn/sprintburn/schema"
)

// Sprint represents a single sprint window.
// This struct maps to the sprintburn_sprints database table.
type Sprint struct {
	// SprintID is the sprint number
	SprintID int32 `parquet:"sprint_id,snappy"`

	// StartDate is the first sprint day as YYYY-MM-DD
	StartDate string `parquet:"start_date,snappy"`

	// EndDate is the last sprint day as YYYY-MM-DD
	EndDate string `parquet:"end_date,snappy"`
}

// BacklogItem represents one unit of planned work.
// This struct maps to the sprintburn_backlog_items database table.
type BacklogItem struct {
	ItemID   string `parquet:"item_id,snappy"`
	SprintID int32  `parquet:"sprint_id,snappy"`
	Title    string `parquet:"title,snappy"`
	Status   string `parquet:"status,snappy"`

	// Estimate is nil for items that were never estimated
	Estimate *float64 `parquet:"estimate,optional,snappy"`
}

// DailySnapshot represents one remaining points observation.
// This struct maps to the sprintburn_daily_snapshots database table.
type DailySnapshot struct {
	SprintID     int32   `parquet:"sprint_id,snappy"`
	SnapshotDate string  `parquet:"snapshot_date,snappy"`
	Points       float64 `parquet:"points,snappy"`
}

// writeParquet writes a slice of records to a Parquet file whose schema is
// derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteSprintsParquet writes a slice of Sprint structs to a Parquet file.
func WriteSprintsParquet(data []Sprint, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteBacklogItemsParquet writes a slice of BacklogItem structs to a Parquet file.
func WriteBacklogItemsParquet(data []BacklogItem, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDailySnapshotsParquet writes a slice of DailySnapshot structs to a Parquet file.
func WriteDailySnapshotsParquet(data []DailySnapshot, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertSprints converts schema.SprintWindow to Sprint for Parquet export.
func ConvertSprints(windows []schema.SprintWindow) []Sprint {
	result := make([]Sprint, len(windows))
	for i, w := range windows {
		result[i] = Sprint{
			SprintID:  int32(w.SprintID),
			StartDate: schema.FormatDate(w.Start),
			EndDate:   schema.FormatDate(w.End),
		}
	}
	return result
}

// ConvertBacklogItems converts schema.BacklogItem to BacklogItem for Parquet export.
func ConvertBacklogItems(items []schema.BacklogItem) []BacklogItem {
	result := make([]BacklogItem, len(items))
	for i, item := range items {
		result[i] = BacklogItem{
			ItemID:   item.ID,
			SprintID: int32(item.SprintID),
			Title:    item.Title,
			Status:   item.Status,
			Estimate: item.Estimate,
		}
	}
	return result
}

// ConvertSnapshots converts schema.Snapshot to DailySnapshot for Parquet export.
func ConvertSnapshots(snapshots []schema.Snapshot) []DailySnapshot {
	result := make([]DailySnapshot, len(snapshots))
	for i, s := range snapshots {
		result[i] = DailySnapshot{
			SprintID:     int32(s.SprintID),
			SnapshotDate: schema.FormatDate(s.Date),
			Points:       s.Points,
		}
	}
	return result
}
