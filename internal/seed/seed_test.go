package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sprintburn/sprintburn/internal/iostore"
	"github.com/sprintburn/sprintburn/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleSeed = `
sprints:
  - number: 7
    start: 2024-06-03
    end: 2024-06-14
    backlog:
      - id: PROJ-1
        title: Login page
        status: To Do
        estimate: 5
      - title: Spike
        status: In Progress
    snapshots:
      - date: 2024-06-03
        points: 30
      - date: "2024-06-04"
        points: 27.5
  - number: 8
    start: 2024-06-17
    end: 2024-06-28
`

func TestParse(t *testing.T) {
	plan, err := Parse(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	require.Len(t, plan.Windows, 2)
	assert.Equal(t, "2024-06-03", schema.FormatDate(plan.Windows[0].Start))
	assert.Equal(t, "2024-06-28", schema.FormatDate(plan.Windows[1].End))

	require.Len(t, plan.Items, 2)
	assert.Equal(t, "PROJ-1", plan.Items[0].ID)
	require.NotNil(t, plan.Items[0].Estimate)
	assert.InDelta(t, 5.0, *plan.Items[0].Estimate, 1e-9)
	assert.Nil(t, plan.Items[1].Estimate)
	_, err = uuid.Parse(plan.Items[1].ID)
	assert.NoError(t, err, "missing ids are generated")

	require.Len(t, plan.Snapshots, 2)
	assert.Equal(t, schema.Snapshot{SprintID: 7, Date: plan.Windows[0].Start, Points: 30}, plan.Snapshots[0])
	assert.InDelta(t, 27.5, plan.Snapshots[1].Points, 1e-9)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty", "", "empty"},
		{"no sprints", "sprints: []", "no sprints"},
		{"unknown key", "sprints:\n  - number: 1\n    start: 2024-06-03\n    end: 2024-06-04\n    owner: me\n", "owner"},
		{"zero number", "sprints:\n  - number: 0\n    start: 2024-06-03\n    end: 2024-06-04\n", "positive"},
		{"duplicate number", "sprints:\n  - {number: 1, start: 2024-06-03, end: 2024-06-04}\n  - {number: 1, start: 2024-06-03, end: 2024-06-04}\n", "twice"},
		{"bad start", "sprints:\n  - {number: 1, start: 06/03/2024, end: 2024-06-04}\n", "invalid start"},
		{"end before start", "sprints:\n  - {number: 1, start: 2024-06-05, end: 2024-06-04}\n", "before start"},
		{"untitled item", "sprints:\n  - number: 1\n    start: 2024-06-03\n    end: 2024-06-04\n    backlog:\n      - status: To Do\n", "no title"},
		{"negative estimate", "sprints:\n  - number: 1\n    start: 2024-06-03\n    end: 2024-06-04\n    backlog:\n      - {title: x, estimate: -1}\n", "negative"},
		{"bad snapshot date", "sprints:\n  - number: 1\n    start: 2024-06-03\n    end: 2024-06-04\n    snapshots:\n      - {date: yesterday, points: 3}\n", "snapshot date"},
		{"snapshot before start", "sprints:\n  - number: 1\n    start: 2024-06-03\n    end: 2024-06-07\n    snapshots:\n      - {date: 2024-06-03, points: 10}\n      - {date: 2024-05-01, points: 10}\n", "before start"},
		{"negative snapshot points", "sprints:\n  - number: 1\n    start: 2024-06-03\n    end: 2024-06-07\n    snapshots:\n      - {date: 2024-06-03, points: -40}\n", "negative points"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o600))

	plan, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, plan.Windows, 2)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	store, err := iostore.NewSprintStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	plan, err := Parse(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	sum, err := plan.Apply(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, Summary{Sprints: 2, Items: 2, Snapshots: 2}, sum)

	latest, err := store.FetchSprintWindow(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, latest.SprintID)

	items, err := store.FetchBacklogItems(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	snaps, err := store.FetchDailySnapshots(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, snaps, 2)
}

func TestApplyStopsOnError(t *testing.T) {
	ctx := context.Background()
	plan, err := Parse(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	store := &iostore.MockSprintStore{}
	store.On("UpsertSprint", mock.Anything, mock.Anything).Return(nil).Once()
	store.On("UpsertSprint", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

	sum, err := plan.Apply(ctx, store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sprint 8")
	assert.Equal(t, 1, sum.Sprints)
	store.AssertExpectations(t)
}
