package schema

import "time"

// StoreStatus represents the status of the sprint store.
type StoreStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	TotalSprints     int              `json:"total_sprints"`
	LatestSprintID   int              `json:"latest_sprint_id"`
	TotalSnapshots   int              `json:"total_snapshots"`
	LastSnapshotDate time.Time        `json:"last_snapshot_date"`
	TableSizes       map[string]int64 `json:"table_sizes"`
	DatabaseBytes    int64            `json:"database_bytes"`
}
