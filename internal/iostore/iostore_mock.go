package iostore

import (
	"context"
	"time"

	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSprintStore implements the StoreManager interface.
func (m *MockStoreManager) GetSprintStore() contract.SprintStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SprintStore)
	return store
}

// MockSprintStore is a mock implementation of SprintStore for testing.
type MockSprintStore struct {
	mock.Mock
}

var _ contract.SprintStore = &MockSprintStore{} // Compile-time check

// FetchSprintWindow implements the SprintStore interface.
func (m *MockSprintStore) FetchSprintWindow(ctx context.Context, sprintID int) (schema.SprintWindow, error) {
	args := m.Called(ctx, sprintID)
	return args.Get(0).(schema.SprintWindow), args.Error(1)
}

// ListSprints implements the SprintStore interface.
func (m *MockSprintStore) ListSprints(ctx context.Context) ([]schema.SprintWindow, error) {
	args := m.Called(ctx)
	windows, _ := args.Get(0).([]schema.SprintWindow)
	return windows, args.Error(1)
}

// UpsertSprint implements the SprintStore interface.
func (m *MockSprintStore) UpsertSprint(ctx context.Context, window schema.SprintWindow) error {
	args := m.Called(ctx, window)
	return args.Error(0)
}

// FetchBacklogItems implements the SprintStore interface.
func (m *MockSprintStore) FetchBacklogItems(ctx context.Context, sprintID int) ([]schema.BacklogItem, error) {
	args := m.Called(ctx, sprintID)
	items, _ := args.Get(0).([]schema.BacklogItem)
	return items, args.Error(1)
}

// AddBacklogItem implements the SprintStore interface.
func (m *MockSprintStore) AddBacklogItem(ctx context.Context, item schema.BacklogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// FetchDailySnapshots implements the SprintStore interface.
func (m *MockSprintStore) FetchDailySnapshots(ctx context.Context, sprintID int) ([]schema.Snapshot, error) {
	args := m.Called(ctx, sprintID)
	snapshots, _ := args.Get(0).([]schema.Snapshot)
	return snapshots, args.Error(1)
}

// RecordDailySnapshot implements the SprintStore interface.
func (m *MockSprintStore) RecordDailySnapshot(ctx context.Context, sprintID int, date time.Time, points float64) error {
	args := m.Called(ctx, sprintID, date, points)
	return args.Error(0)
}

// GetStatus implements the SprintStore interface.
func (m *MockSprintStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SprintStore interface.
func (m *MockSprintStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
