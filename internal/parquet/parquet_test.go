package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/sprintburn/sprintburn/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := schema.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// readAll reads every row of a Parquet file written by writeParquet.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"sprint", new(Sprint), []string{"sprint_id", "start_date", "end_date"}},
		{"backlog item", new(BacklogItem), []string{"item_id", "sprint_id", "title", "status", "estimate"}},
		{"daily snapshot", new(DailySnapshot), []string{"sprint_id", "snapshot_date", "points"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, colName := range tt.columns {
				col, ok := s.Lookup(colName)
				require.True(t, ok, "Column %s should exist in schema", colName)
				require.NotNil(t, col, "Column %s should not be nil", colName)
			}
		})
	}
}

func TestWriteSprintsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "sprints.parquet")
	data := ConvertSprints([]schema.SprintWindow{
		{SprintID: 7, Start: day("2024-06-03"), End: day("2024-06-14")},
		{SprintID: 6, Start: day("2024-05-20"), End: day("2024-05-31")},
	})

	require.NoError(t, WriteSprintsParquet(data, outputPath))

	got := readAll[Sprint](t, outputPath)
	assert.Equal(t, data, got)
}

func TestWriteBacklogItemsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "backlog.parquet")
	data := ConvertBacklogItems([]schema.BacklogItem{
		{ID: "A-1", SprintID: 7, Title: "Login", Status: "To Do", Estimate: schema.Estimate(3)},
		{ID: "A-2", SprintID: 7, Title: "Spike", Status: "In Progress"},
	})

	require.NoError(t, WriteBacklogItemsParquet(data, outputPath))

	got := readAll[BacklogItem](t, outputPath)
	require.Len(t, got, 2)
	assert.Equal(t, "A-1", got[0].ItemID)
	require.NotNil(t, got[0].Estimate)
	assert.InDelta(t, 3.0, *got[0].Estimate, 1e-9)
	assert.Nil(t, got[1].Estimate, "Estimate should be nil")
}

func TestWriteDailySnapshotsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "snapshots.parquet")
	data := ConvertSnapshots([]schema.Snapshot{
		{SprintID: 7, Date: day("2024-06-03"), Points: 40},
		{SprintID: 7, Date: day("2024-06-04"), Points: 36.5},
	})
	assert.Equal(t, "2024-06-04", data[1].SnapshotDate)

	require.NoError(t, WriteDailySnapshotsParquet(data, outputPath))

	got := readAll[DailySnapshot](t, outputPath)
	require.Len(t, got, 2)
	assert.InDelta(t, 36.5, got[1].Points, 1e-9)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteSprintsParquet([]Sprint{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "File should contain the Parquet footer")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteSprintsParquet(nil, filepath.Join(t.TempDir(), "missing", "sprints.parquet"))
	assert.Error(t, err)
}
