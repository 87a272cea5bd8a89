package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
)

// burndownJSON is the JSON view of a burndown report. Dates are civil dates.
type burndownJSON struct {
	SprintID        int       `json:"sprint_id"`
	Start           string    `json:"start"`
	End             string    `json:"end"`
	Today           string    `json:"today"`
	WorkingDays     int       `json:"working_days"`
	IncludeWeekends bool      `json:"include_weekends"`
	Pace            string    `json:"pace"`
	Duplicates      int       `json:"duplicate_snapshots"`
	Labels          []int     `json:"labels"`
	Dates           []string  `json:"dates"`
	Actual          []float64 `json:"actual"`
	Ideal           []float64 `json:"ideal"`
}

// PrintBurndownReport outputs the report, dispatching based on the output format configured.
func PrintBurndownReport(report schema.BurndownReport, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteBurndownReport(w, report, cfg, duration)
	}, fmt.Sprintf("Wrote %s burndown of sprint %d", cfg.Output, report.Sprint.SprintID))
}

// WriteBurndownReport writes the report to w in the configured output format.
func WriteBurndownReport(w io.Writer, report schema.BurndownReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := newFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, toBurndownJSON(report)); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeBurndownCSV(w, report.Dataset, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeBurndownTable(w, report, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing burndown table output: %w", err)
		}
	}
	return nil
}

func toBurndownJSON(report schema.BurndownReport) burndownJSON {
	ds := report.Dataset
	dates := make([]string, len(ds.Dates))
	for i, d := range ds.Dates {
		dates[i] = schema.FormatDate(d)
	}
	out := burndownJSON{
		SprintID:        report.Sprint.SprintID,
		Start:           schema.FormatDate(report.Sprint.Start),
		End:             schema.FormatDate(report.Sprint.End),
		WorkingDays:     report.WorkingDays,
		IncludeWeekends: report.IncludeWeekends,
		Pace:            contract.GetPlainPace(report.Pace),
		Duplicates:      report.Duplicates,
		Labels:          ds.Labels,
		Dates:           dates,
		Actual:          ds.Actual,
		Ideal:           ds.Ideal,
	}
	if !report.Today.IsZero() {
		out.Today = schema.FormatDate(report.Today)
	}
	return out
}

// writeBurndownCSV writes one row per day label. Cells a series does not cover stay empty.
func writeBurndownCSV(w io.Writer, ds schema.ChartDataset, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"day", "date", "actual", "ideal"}, func(cw *csv.Writer) error {
		for i, label := range ds.Labels {
			date := ""
			if i < len(ds.Dates) {
				date = schema.FormatDate(ds.Dates[i])
			}
			actual, ideal := "", ""
			if i < len(ds.Actual) {
				actual = fmtFloat(ds.Actual[i])
			}
			if i < len(ds.Ideal) {
				ideal = fmtFloat(ds.Ideal[i])
			}
			if err := cw.Write([]string{fmt.Sprint(label), date, actual, ideal}); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeBurndownTable prints the dataset as a five-column table followed by a summary.
func writeBurndownTable(w io.Writer, report schema.BurndownReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	sprint := report.Sprint
	weekends := "weekends excluded"
	if report.IncludeWeekends {
		weekends = "weekends included"
	}
	_, _ = fmt.Fprintf(w, "Sprint %d: %s to %s (%d working days, %s)\n",
		sprint.SprintID, schema.FormatDate(sprint.Start), schema.FormatDate(sprint.End), report.WorkingDays, weekends)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Day", "Date", "Actual", "Ideal", "Delta"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	ds := report.Dataset
	data := make([][]string, 0, len(ds.Labels))
	for i, label := range ds.Labels {
		delta := missingCell
		if i < len(ds.Actual) && i < len(ds.Ideal) {
			delta = fmtFloat(ds.Actual[i] - ds.Ideal[i])
		}
		data = append(data, []string{
			fmt.Sprint(label),
			dateAt(ds.Dates, i),
			cellAt(ds.Actual, i, fmtFloat),
			cellAt(ds.Ideal, i, fmtFloat),
			delta,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Pace: %s\n", paceLabel(report.Pace, cfg.UseColors))
	if report.Duplicates > 0 {
		_, _ = fmt.Fprintf(w, "Ignored %d duplicate snapshots (first write wins)\n", report.Duplicates)
	}
	_, _ = fmt.Fprintf(w, "Burndown computed in %v. Store backend: %s\n", duration, cfg.StoreBackend)
	return nil
}
