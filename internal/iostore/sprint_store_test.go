package iostore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sprintburn/sprintburn/internal/contract"
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

// newMemoryStore opens an in-memory SQLite store closed with the test.
func newMemoryStore(t *testing.T) *SprintStoreImpl {
	t.Helper()
	store, err := NewSprintStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	store.now = func() time.Time { return time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC) }
	return store
}

func TestSprintStore_Sprints(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	_, err := store.FetchSprintWindow(ctx, 0)
	assert.True(t, errors.Is(err, contract.ErrSprintNotFound), "empty store should have no latest sprint")

	require.NoError(t, store.UpsertSprint(ctx, schema.SprintWindow{SprintID: 6, Start: day("2024-05-20"), End: day("2024-05-31")}))
	require.NoError(t, store.UpsertSprint(ctx, schema.SprintWindow{SprintID: 7, Start: day("2024-06-03"), End: day("2024-06-13")}))

	// Upsert replaces the window.
	require.NoError(t, store.UpsertSprint(ctx, schema.SprintWindow{SprintID: 7, Start: day("2024-06-03"), End: day("2024-06-14")}))

	latest, err := store.FetchSprintWindow(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, schema.SprintWindow{SprintID: 7, Start: day("2024-06-03"), End: day("2024-06-14")}, latest)

	six, err := store.FetchSprintWindow(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, day("2024-05-20"), six.Start)

	_, err = store.FetchSprintWindow(ctx, 99)
	assert.ErrorIs(t, err, contract.ErrSprintNotFound)

	sprints, err := store.ListSprints(ctx)
	require.NoError(t, err)
	require.Len(t, sprints, 2)
	assert.Equal(t, 7, sprints[0].SprintID)
	assert.Equal(t, 6, sprints[1].SprintID)

	assert.Error(t, store.UpsertSprint(ctx, schema.SprintWindow{SprintID: 0}))
}

func TestSprintStore_Backlog(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	require.NoError(t, store.AddBacklogItem(ctx, schema.BacklogItem{ID: "B-2", SprintID: 7, Title: "Spike", Status: "To Do"}))
	require.NoError(t, store.AddBacklogItem(ctx, schema.BacklogItem{ID: "B-1", SprintID: 7, Title: "Login", Status: "To Do", Estimate: schema.Estimate(5)}))
	require.NoError(t, store.AddBacklogItem(ctx, schema.BacklogItem{ID: "B-3", SprintID: 8, Title: "Later", Status: "To Do", Estimate: schema.Estimate(1)}))

	// Re-adding an item updates it.
	require.NoError(t, store.AddBacklogItem(ctx, schema.BacklogItem{ID: "B-1", SprintID: 7, Title: "Login", Status: "Done", Estimate: schema.Estimate(5)}))

	items, err := store.FetchBacklogItems(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "B-1", items[0].ID)
	assert.Equal(t, "Done", items[0].Status)
	require.NotNil(t, items[0].Estimate)
	assert.InDelta(t, 5.0, *items[0].Estimate, 1e-9)
	assert.Nil(t, items[1].Estimate)

	assert.Error(t, store.AddBacklogItem(ctx, schema.BacklogItem{SprintID: 7}))
}

func TestSprintStore_Snapshots(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	// Out of order and duplicated on purpose: insertion order must be kept.
	require.NoError(t, store.RecordDailySnapshot(ctx, 7, day("2024-06-04"), 8))
	require.NoError(t, store.RecordDailySnapshot(ctx, 7, day("2024-06-03"), 10))
	require.NoError(t, store.RecordDailySnapshot(ctx, 7, day("2024-06-04"), 7))
	require.NoError(t, store.RecordDailySnapshot(ctx, 8, day("2024-06-17"), 30))

	snaps, err := store.FetchDailySnapshots(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []schema.Snapshot{
		{SprintID: 7, Date: day("2024-06-04"), Points: 8},
		{SprintID: 7, Date: day("2024-06-03"), Points: 10},
		{SprintID: 7, Date: day("2024-06-04"), Points: 7},
	}, snaps)

	none, err := store.FetchDailySnapshots(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSprintStore_SnapshotKeepsCivilDate(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	// 23:30 in New York is already the next day in UTC; the civil date must survive.
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	require.NoError(t, store.RecordDailySnapshot(ctx, 1, time.Date(2024, 6, 3, 23, 30, 0, 0, ny), 5))

	snaps, err := store.FetchDailySnapshots(ctx, 1)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "2024-06-03", schema.FormatDate(snaps[0].Date))
}

func TestSprintStore_GetStatus(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalSprints)
	assert.True(t, status.LastSnapshotDate.IsZero())

	require.NoError(t, store.UpsertSprint(ctx, schema.SprintWindow{SprintID: 3, Start: day("2024-06-03"), End: day("2024-06-14")}))
	require.NoError(t, store.RecordDailySnapshot(ctx, 3, day("2024-06-03"), 10))
	require.NoError(t, store.RecordDailySnapshot(ctx, 3, day("2024-06-05"), 6))
	require.NoError(t, store.AddBacklogItem(ctx, schema.BacklogItem{ID: "X", SprintID: 3, Title: "x", Status: "To Do"}))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalSprints)
	assert.Equal(t, 3, status.LatestSprintID)
	assert.Equal(t, 2, status.TotalSnapshots)
	assert.Equal(t, day("2024-06-05"), status.LastSnapshotDate)
	assert.Equal(t, int64(1), status.TableSizes[backlogTable])
	assert.Greater(t, status.DatabaseBytes, int64(0))
}

func TestSprintStore_DatabaseSizeFallsBackToEstimate(t *testing.T) {
	store := newMemoryStore(t)
	require.NoError(t, store.db.Close())

	size := store.databaseSize(schema.StoreStatus{TableSizes: map[string]int64{sprintsTable: 2, snapshotsTable: 5}})
	assert.Equal(t, int64(700), size)
}

func TestNewSprintStoreErrors(t *testing.T) {
	_, err := NewSprintStore(schema.DatabaseBackend("redis"), "")
	assert.Error(t, err)
}

func TestSQLiteCloseNil(t *testing.T) {
	store := &SprintStoreImpl{}
	assert.NoError(t, store.Close())

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}
