// Package schema has the models shared by the burndown engine, the store and the writers.
package schema

import "time"

// SprintWindow is a fixed calendar window of planned work. Both ends are inclusive civil dates.
type SprintWindow struct {
	SprintID int       `json:"sprint_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// Snapshot is one recorded "points remaining" observation for a sprint day.
type Snapshot struct {
	SprintID int       `json:"sprint_id"`
	Date     time.Time `json:"date"`
	Points   float64   `json:"points"`
}

// BacklogItem is a unit of planned work inside a sprint.
// Estimate is nil when the item was never estimated.
type BacklogItem struct {
	ID       string   `json:"id"`
	SprintID int      `json:"sprint_id"`
	Title    string   `json:"title"`
	Status   string   `json:"status"`
	Estimate *float64 `json:"estimate,omitempty"`
}

// ChartDataset holds the aligned labels and series handed to the chart renderer.
// len(Labels) == max(len(Actual), len(Ideal)).
type ChartDataset struct {
	Labels []int       `json:"labels"`
	Dates  []time.Time `json:"dates"`
	Actual []float64   `json:"actual"`
	Ideal  []float64   `json:"ideal"`
}

// BurndownReport is a computed dataset together with the sprint it belongs to.
type BurndownReport struct {
	Sprint          SprintWindow `json:"sprint"`
	Dataset         ChartDataset `json:"dataset"`
	WorkingDays     int          `json:"working_days"`
	IncludeWeekends bool         `json:"include_weekends"`
	Pace            PaceStatus   `json:"pace"`
	Today           time.Time    `json:"today"`
	Duplicates      int          `json:"duplicate_snapshots"`
}

// RemainingPoints is the backlog point count of a sprint at a point in time.
type RemainingPoints struct {
	SprintID    int     `json:"sprint_id"`
	Points      float64 `json:"points"`
	Items       int     `json:"items"`
	Counted     int     `json:"counted"`
	Excluded    int     `json:"excluded"`
	Unestimated int     `json:"unestimated"`
}
