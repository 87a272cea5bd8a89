// Package seed imports sprints, backlog items and snapshots from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
	"gopkg.in/yaml.v3"
)

// File is the top level of a seed file.
type File struct {
	Sprints []Sprint `yaml:"sprints"`
}

// Sprint is one sprint window with its backlog and recorded snapshots.
type Sprint struct {
	Number    int        `yaml:"number"`
	Start     string     `yaml:"start"`
	End       string     `yaml:"end"`
	Backlog   []Item     `yaml:"backlog"`
	Snapshots []Snapshot `yaml:"snapshots"`
}

// Item is a backlog item. A missing ID is generated on import.
type Item struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Status   string   `yaml:"status"`
	Estimate *float64 `yaml:"estimate"`
}

// Snapshot is a recorded "points remaining" value.
type Snapshot struct {
	Date   string  `yaml:"date"`
	Points float64 `yaml:"points"`
}

// Summary counts what Apply wrote.
type Summary struct {
	Sprints   int
	Items     int
	Snapshots int
}

// Plan is a validated seed file ready to be written.
type Plan struct {
	Windows   []schema.SprintWindow
	Items     []schema.BacklogItem
	Snapshots []schema.Snapshot
}

// ParseFile reads and validates the seed file at path.
func ParseFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse decodes a seed document and validates every entry before anything is written.
// Unknown keys are rejected.
func Parse(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("seed file is empty")
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return file.plan()
}

func (f File) plan() (*Plan, error) {
	if len(f.Sprints) == 0 {
		return nil, errors.New("seed file has no sprints")
	}

	plan := &Plan{}
	seen := make(map[int]struct{}, len(f.Sprints))
	for i, s := range f.Sprints {
		if s.Number <= 0 {
			return nil, fmt.Errorf("sprint #%d: number must be positive, got %d", i+1, s.Number)
		}
		if _, dup := seen[s.Number]; dup {
			return nil, fmt.Errorf("sprint %d is listed twice", s.Number)
		}
		seen[s.Number] = struct{}{}

		start, err := parseDate(s.Start, s.Number, "start")
		if err != nil {
			return nil, err
		}
		end, err := parseDate(s.End, s.Number, "end")
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, fmt.Errorf("sprint %d: end %s is before start %s", s.Number, s.End, s.Start)
		}
		plan.Windows = append(plan.Windows, schema.SprintWindow{SprintID: s.Number, Start: start, End: end})

		for j, item := range s.Backlog {
			if item.Title == "" {
				return nil, fmt.Errorf("sprint %d: backlog item #%d has no title", s.Number, j+1)
			}
			if item.Estimate != nil && *item.Estimate < 0 {
				return nil, fmt.Errorf("sprint %d: backlog item %q has a negative estimate", s.Number, item.Title)
			}
			id := item.ID
			if id == "" {
				id = uuid.NewString()
			}
			plan.Items = append(plan.Items, schema.BacklogItem{
				ID:       id,
				SprintID: s.Number,
				Title:    item.Title,
				Status:   item.Status,
				Estimate: item.Estimate,
			})
		}

		for _, snap := range s.Snapshots {
			date, err := parseDate(snap.Date, s.Number, "snapshot date")
			if err != nil {
				return nil, err
			}
			if date.Before(start) {
				return nil, fmt.Errorf("sprint %d: snapshot date %s is before start %s", s.Number, snap.Date, s.Start)
			}
			if snap.Points < 0 {
				return nil, fmt.Errorf("sprint %d: snapshot on %s has negative points %v", s.Number, snap.Date, snap.Points)
			}
			plan.Snapshots = append(plan.Snapshots, schema.Snapshot{SprintID: s.Number, Date: date, Points: snap.Points})
		}
	}
	return plan, nil
}

func parseDate(s string, sprint int, field string) (time.Time, error) {
	t, err := schema.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sprint %d: invalid %s %q, expected YYYY-MM-DD", sprint, field, s)
	}
	return t, nil
}

// Apply writes the plan to the store. Sprints and backlog items are upserted.
// Snapshots are appended, so applying the same plan twice records them twice.
func (p *Plan) Apply(ctx context.Context, store contract.SprintStore) (Summary, error) {
	var sum Summary
	for _, w := range p.Windows {
		if err := store.UpsertSprint(ctx, w); err != nil {
			return sum, fmt.Errorf("failed to save sprint %d: %w", w.SprintID, err)
		}
		sum.Sprints++
	}
	for _, item := range p.Items {
		if err := store.AddBacklogItem(ctx, item); err != nil {
			return sum, fmt.Errorf("failed to save backlog item %s: %w", item.ID, err)
		}
		sum.Items++
	}
	for _, snap := range p.Snapshots {
		if err := store.RecordDailySnapshot(ctx, snap.SprintID, snap.Date, snap.Points); err != nil {
			return sum, fmt.Errorf("failed to record snapshot of sprint %d: %w", snap.SprintID, err)
		}
		sum.Snapshots++
	}
	return sum, nil
}
