// Package metrics exports burndown gauges in the Prometheus text format so a
// node_exporter textfile collector can scrape them.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sprintburn/sprintburn/schema"
)

const namespace = "sprintburn"

var paceStatuses = []schema.PaceStatus{
	schema.PaceAhead,
	schema.PaceOnTrack,
	schema.PaceBehind,
	schema.PaceUnknown,
}

// Gauges holds the burndown gauges of one export.
type Gauges struct {
	registry *prometheus.Registry

	pointsRemaining *prometheus.GaugeVec
	guidelinePoints *prometheus.GaugeVec
	sprintDay       *prometheus.GaugeVec
	workingDays     *prometheus.GaugeVec
	duplicates      *prometheus.GaugeVec
	pace            *prometheus.GaugeVec
}

// NewGauges registers the burndown gauges on a fresh registry.
func NewGauges() *Gauges {
	g := &Gauges{
		registry: prometheus.NewRegistry(),
		pointsRemaining: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "points_remaining",
			Help:      "Latest actual points remaining in the sprint.",
		}, []string{"sprint"}),
		guidelinePoints: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "guideline_points",
			Help:      "Guideline points for the latest sprint day.",
		}, []string{"sprint"}),
		sprintDay: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sprint_day",
			Help:      "Label of the latest day with an actual value.",
		}, []string{"sprint"}),
		workingDays: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "working_days",
			Help:      "Weekdays between sprint start and the closing day.",
		}, []string{"sprint"}),
		duplicates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "duplicate_snapshots",
			Help:      "Snapshots ignored because their day was already recorded.",
		}, []string{"sprint"}),
		pace: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pace",
			Help:      "1 for the current pace status of the sprint, 0 otherwise.",
		}, []string{"sprint", "status"}),
	}
	g.registry.MustRegister(g.pointsRemaining, g.guidelinePoints, g.sprintDay, g.workingDays, g.duplicates, g.pace)
	return g
}

// Observe sets the gauges from a burndown report.
func (g *Gauges) Observe(report schema.BurndownReport) {
	sprint := strconv.Itoa(report.Sprint.SprintID)
	ds := report.Dataset

	if n := len(ds.Actual); n > 0 {
		g.pointsRemaining.WithLabelValues(sprint).Set(ds.Actual[n-1])
		g.sprintDay.WithLabelValues(sprint).Set(float64(n))
		if len(ds.Ideal) > 0 {
			g.guidelinePoints.WithLabelValues(sprint).Set(ds.Ideal[min(n, len(ds.Ideal))-1])
		}
	}
	g.workingDays.WithLabelValues(sprint).Set(float64(report.WorkingDays))
	g.duplicates.WithLabelValues(sprint).Set(float64(report.Duplicates))

	current := report.Pace
	if current == "" {
		current = schema.PaceUnknown
	}
	for _, status := range paceStatuses {
		v := 0.0
		if status == current {
			v = 1
		}
		g.pace.WithLabelValues(sprint, string(status)).Set(v)
	}
}

// Registry exposes the underlying registry.
func (g *Gauges) Registry() *prometheus.Registry {
	return g.registry
}

// WriteTextfile writes the gauges of report to path in the Prometheus text format.
// The file is replaced atomically.
func WriteTextfile(path string, report schema.BurndownReport) error {
	g := NewGauges()
	g.Observe(report)
	if err := prometheus.WriteToTextfile(path, g.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
