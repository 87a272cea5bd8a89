package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/internal/outwriter"
	"github.com/sprintburn/sprintburn/internal/seed"
	"github.com/sprintburn/sprintburn/schema"
)

// defaultItemStatus is used for backlog items added without a status.
const defaultItemStatus = "To Do"

func storeOf(mgr contract.StoreManager) (contract.SprintStore, error) {
	if mgr == nil {
		return nil, errNoStore
	}
	store := mgr.GetSprintStore()
	if store == nil {
		return nil, errNoStore
	}
	return store, nil
}

// ExecuteAddSprint creates or replaces the window of the configured sprint.
func ExecuteAddSprint(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := storeOf(mgr)
	if err != nil {
		return err
	}
	if cfg.SprintID <= 0 {
		return errors.New("--sprint is required and must be positive")
	}
	if cfg.SprintStart.IsZero() || cfg.SprintEnd.IsZero() {
		return errors.New("--start and --end are required")
	}

	window := schema.SprintWindow{SprintID: cfg.SprintID, Start: cfg.SprintStart, End: cfg.SprintEnd}
	if err := validateWindow(NewCalendar(cfg.Location), window); err != nil {
		return err
	}
	if err := store.UpsertSprint(ctx, window); err != nil {
		return fmt.Errorf("failed to save sprint %d: %w", window.SprintID, err)
	}
	cfg.Log().Info("saved sprint", "sprint", window.SprintID)
	fmt.Printf("Saved sprint %d: %s to %s\n", window.SprintID, schema.FormatDate(window.Start), schema.FormatDate(window.End))
	return nil
}

// ExecuteListSprints prints every known sprint, newest first.
func ExecuteListSprints(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := storeOf(mgr)
	if err != nil {
		return err
	}
	sprints, err := store.ListSprints(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sprints: %w", err)
	}
	return outwriter.NewOutWriter().WriteSprints(sprints, cfg)
}

// GetSprintWindow returns the configured sprint, or the latest one when none is set.
func GetSprintWindow(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.SprintWindow, error) {
	store, err := storeOf(mgr)
	if err != nil {
		return schema.SprintWindow{}, err
	}
	window, err := store.FetchSprintWindow(ctx, cfg.SprintID)
	if err != nil {
		return schema.SprintWindow{}, fmt.Errorf("failed to read sprint window: %w", err)
	}
	return window, nil
}

// ExecuteAddBacklogItem adds an item to the configured sprint. Missing ids are generated.
func ExecuteAddBacklogItem(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := storeOf(mgr)
	if err != nil {
		return err
	}
	if cfg.ItemTitle == "" {
		return errors.New("--title is required")
	}
	window, err := GetSprintWindow(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	item := schema.BacklogItem{
		ID:       cfg.ItemID,
		SprintID: window.SprintID,
		Title:    cfg.ItemTitle,
		Status:   cfg.ItemStatus,
		Estimate: cfg.ItemEstimate,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = defaultItemStatus
	}

	if err := store.AddBacklogItem(ctx, item); err != nil {
		return fmt.Errorf("failed to save backlog item: %w", err)
	}
	cfg.Log().Info("saved backlog item", "sprint", item.SprintID, "id", item.ID)
	fmt.Printf("Saved backlog item %s in sprint %d\n", item.ID, item.SprintID)
	return nil
}

// GetRemainingPoints counts the unresolved backlog points of the configured sprint.
func GetRemainingPoints(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.BacklogItem, schema.RemainingPoints, error) {
	store, err := storeOf(mgr)
	if err != nil {
		return nil, schema.RemainingPoints{}, err
	}
	window, err := GetSprintWindow(ctx, cfg, mgr)
	if err != nil {
		return nil, schema.RemainingPoints{}, err
	}
	items, err := store.FetchBacklogItems(ctx, window.SprintID)
	if err != nil {
		return nil, schema.RemainingPoints{}, fmt.Errorf("failed to read backlog: %w", err)
	}
	return items, CountRemainingPoints(window.SprintID, items, cfg.StatusExclude), nil
}

// ExecuteListBacklog prints the backlog of the configured sprint with its remaining points.
func ExecuteListBacklog(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	items, remaining, err := GetRemainingPoints(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteBacklog(items, remaining, cfg)
}

// ExecuteListSnapshots prints the snapshots of the configured sprint in recording order.
func ExecuteListSnapshots(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := storeOf(mgr)
	if err != nil {
		return err
	}
	window, err := GetSprintWindow(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	snapshots, err := store.FetchDailySnapshots(ctx, window.SprintID)
	if err != nil {
		return fmt.Errorf("failed to read snapshots: %w", err)
	}
	return outwriter.NewOutWriter().WriteSnapshots(snapshots, cfg)
}

// ExecuteSeed imports the seed file named in the configuration.
func ExecuteSeed(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := storeOf(mgr)
	if err != nil {
		return err
	}
	if cfg.SeedFile == "" {
		return errors.New("--file is required")
	}
	plan, err := seed.ParseFile(cfg.SeedFile)
	if err != nil {
		return err
	}
	sum, err := plan.Apply(ctx, store)
	if err != nil {
		return err
	}
	cfg.Log().Info("seeded store", "sprints", sum.Sprints, "items", sum.Items, "snapshots", sum.Snapshots)
	fmt.Printf("Imported %d sprints, %d backlog items and %d snapshots from %s\n", sum.Sprints, sum.Items, sum.Snapshots, cfg.SeedFile)
	return nil
}
