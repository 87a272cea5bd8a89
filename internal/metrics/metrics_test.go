package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sprintburn/sprintburn/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() schema.BurndownReport {
	return schema.BurndownReport{
		Sprint: schema.SprintWindow{SprintID: 7},
		Dataset: schema.ChartDataset{
			Labels: []int{1, 2, 3, 4},
			Actual: []float64{12, 9.5},
			Ideal:  []float64{12, 8, 4, 0},
		},
		WorkingDays: 3,
		Pace:        schema.PaceBehind,
		Duplicates:  2,
	}
}

func TestObserve(t *testing.T) {
	g := NewGauges()
	g.Observe(sampleReport())

	families, err := g.Registry().Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "status" {
					key += "/" + lp.GetValue()
				}
			}
			values[key] = m.GetGauge().GetValue()
		}
	}

	assert.InDelta(t, 9.5, values["sprintburn_points_remaining"], 1e-9)
	assert.InDelta(t, 8.0, values["sprintburn_guideline_points"], 1e-9)
	assert.InDelta(t, 2.0, values["sprintburn_sprint_day"], 1e-9)
	assert.InDelta(t, 3.0, values["sprintburn_working_days"], 1e-9)
	assert.InDelta(t, 2.0, values["sprintburn_duplicate_snapshots"], 1e-9)
	assert.InDelta(t, 1.0, values["sprintburn_pace/Behind"], 1e-9)
	assert.InDelta(t, 0.0, values["sprintburn_pace/Ahead"], 1e-9)
}

func TestObserveActualPastGuideline(t *testing.T) {
	report := sampleReport()
	report.Dataset.Actual = []float64{12, 9, 7, 5, 3, 3}
	report.Pace = ""

	g := NewGauges()
	g.Observe(report)

	families, err := g.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		switch mf.GetName() {
		case "sprintburn_guideline_points":
			assert.InDelta(t, 0.0, mf.GetMetric()[0].GetGauge().GetValue(), 1e-9)
		case "sprintburn_sprint_day":
			assert.InDelta(t, 6.0, mf.GetMetric()[0].GetGauge().GetValue(), 1e-9)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burndown.prom")
	require.NoError(t, WriteTextfile(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `sprintburn_points_remaining{sprint="7"} 9.5`)
	assert.Contains(t, text, `sprintburn_pace{sprint="7",status="Behind"} 1`)
	assert.Contains(t, text, "# HELP sprintburn_working_days")
}

func TestWriteTextfileBadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"), sampleReport())
	assert.Error(t, err)
}
