//go:build basic

// Package integration contains end-to-end tests for the sprintburn binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database backends need Docker: go test -tags database ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// burndownOutput is the part of the JSON burndown output the tests check.
type burndownOutput struct {
	SprintID    int       `json:"sprint_id"`
	WorkingDays int       `json:"working_days"`
	Pace        string    `json:"pace"`
	Labels      []int     `json:"labels"`
	Dates       []string  `json:"dates"`
	Actual      []float64 `json:"actual"`
	Ideal       []float64 `json:"ideal"`
}

func sqliteEnv(t *testing.T) []string {
	return []string{
		"SPRINTBURN_STORE_BACKEND=sqlite",
		"SPRINTBURN_STORE_DB_CONNECT=" + filepath.Join(t.TempDir(), "sprints.db"),
		"SPRINTBURN_TIMEZONE=UTC",
	}
}

func readBurndown(t *testing.T, path string) burndownOutput {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out burndownOutput
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// TestDatasetVerification seeds a sprint and checks the dataset against hand-computed values.
func TestDatasetVerification(t *testing.T) {
	env := sqliteEnv(t)

	_, err := runCommand(t, env, "seed", "--file", writeSeedFile(t))
	require.NoError(t, err)

	outFile := filepath.Join(t.TempDir(), "dataset.json")
	_, err = runCommand(t, env, "dataset", "--today", "2024-06-05", "--include-weekends", "no",
		"--output", "json", "--output-file", outFile)
	require.NoError(t, err)

	got := readBurndown(t, outFile)
	assert.Equal(t, 1, got.SprintID)
	assert.Equal(t, 4, got.WorkingDays)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got.Labels)
	assert.Equal(t, []float64{20, 18, 12}, got.Actual)
	assert.Equal(t, []float64{20, 15, 10, 5, 0}, got.Ideal)
	assert.Equal(t, "Behind", got.Pace)
	assert.Equal(t, "2024-06-07", got.Dates[len(got.Dates)-1])
}

// TestChartRecordsToday runs the chart command and checks the recorded snapshot and HTML files.
func TestChartRecordsToday(t *testing.T) {
	env := sqliteEnv(t)

	_, err := runCommand(t, env, "seed", "--file", writeSeedFile(t))
	require.NoError(t, err)

	chartDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "chart.json")
	metricsFile := filepath.Join(t.TempDir(), "sprintburn.prom")
	_, err = runCommand(t, env, "chart", "--today", "2024-06-06", "--chart-dir", chartDir,
		"--metrics-file", metricsFile, "--output", "json", "--output-file", outFile)
	require.NoError(t, err)

	// Backlog without the Done item: 8 + 4.
	got := readBurndown(t, outFile)
	assert.Equal(t, []float64{20, 18, 12, 12}, got.Actual)

	_, err = os.Stat(filepath.Join(chartDir, "sprint1-latest-burndown.html"))
	assert.NoError(t, err)

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `sprintburn_points_remaining{sprint="1"} 12`)

	// A second run the same day keeps the first value.
	_, err = runCommand(t, env, "snapshot", "record", "--today", "2024-06-06", "--points", "3")
	require.NoError(t, err)
	_, err = runCommand(t, env, "dataset", "--today", "2024-06-06", "--output", "json", "--output-file", outFile)
	require.NoError(t, err)
	got = readBurndown(t, outFile)
	assert.Equal(t, []float64{20, 18, 12, 12}, got.Actual)
}

// TestStoreMaintenance runs migrate, status, export and clear against a SQLite file.
func TestStoreMaintenance(t *testing.T) {
	env := sqliteEnv(t)

	out, err := runCommand(t, env, "store", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "version")

	_, err = runCommand(t, env, "seed", "--file", writeSeedFile(t))
	require.NoError(t, err)

	out, err = runCommand(t, env, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Sprints: 1")

	base := filepath.Join(t.TempDir(), "export")
	_, err = runCommand(t, env, "store", "export", "--output-file", base)
	require.NoError(t, err)
	_, err = os.Stat(base + ".daily_snapshots.parquet")
	assert.NoError(t, err)

	out, err = runCommand(t, env, "store", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")
}

func TestUnknownSprintFails(t *testing.T) {
	env := sqliteEnv(t)
	_, err := runCommand(t, env, "dataset", "--sprint", "42")
	assert.Error(t, err)
}
