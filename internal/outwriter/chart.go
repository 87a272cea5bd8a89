package outwriter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
)

// Chart styling.
const (
	chartTitle      = "Sprint Burndown"
	burndownSeries  = "Burndown"
	guidelineSeries = "Guideline"
	burndownColor   = "#ef4444"
	guidelineColor  = "#cad0d6"
	chartWidth      = "500px"
	chartHeight     = "300px"
)

// HTMLChartRenderer writes burndown charts as standalone HTML pages into Dir.
type HTMLChartRenderer struct {
	Dir string
}

var _ contract.ChartRenderer = &HTMLChartRenderer{} // Compile-time check

// NewHTMLChartRenderer creates a renderer writing into dir.
func NewHTMLChartRenderer(dir string) *HTMLChartRenderer {
	return &HTMLChartRenderer{Dir: dir}
}

// RenderBurndown writes a timestamped chart and a "latest" chart for the sprint
// and returns both paths. The directory is created when missing.
func (r *HTMLChartRenderer) RenderBurndown(report schema.BurndownReport, now time.Time) ([]string, error) {
	dir := r.Dir
	if dir == "" {
		dir = contract.DefaultChartDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}

	var buf bytes.Buffer
	if err := BuildBurndownChart(report).Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render burndown chart: %w", err)
	}

	id := report.Sprint.SprintID
	paths := []string{
		filepath.Join(dir, fmt.Sprintf("sprint%d-%d-burndown.html", id, now.Unix())),
		filepath.Join(dir, fmt.Sprintf("sprint%d-latest-burndown.html", id)),
	}
	for _, path := range paths {
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write chart %s: %w", path, err)
		}
	}
	return paths, nil
}

// BuildBurndownChart builds the two-line burndown chart of a report.
func BuildBurndownChart(report schema.BurndownReport) *charts.Line {
	ds := report.Dataset

	yMax := 0.0
	if len(ds.Actual) > 0 {
		yMax = max(yMax, slices.Max(ds.Actual))
	}
	if len(ds.Ideal) > 0 {
		yMax = max(yMax, slices.Max(ds.Ideal))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: "#ffffff",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    chartTitle,
			Subtitle: fmt.Sprintf("Sprint %d", report.Sprint.SprintID),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Day"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Points Left", Min: 0, Max: yMax}),
	)

	labels := make([]string, len(ds.Labels))
	for i, l := range ds.Labels {
		labels[i] = strconv.Itoa(l)
	}
	line.SetXAxis(labels)

	line.AddSeries(burndownSeries, lineData(ds.Actual),
		charts.WithLineStyleOpts(opts.LineStyle{Color: burndownColor, Width: 2}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: burndownColor}),
	)
	line.AddSeries(guidelineSeries, lineData(ds.Ideal),
		charts.WithLineStyleOpts(opts.LineStyle{Color: guidelineColor, Width: 2, Type: "dashed"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: guidelineColor}),
	)
	return line
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}
