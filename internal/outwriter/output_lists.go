package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
)

type sprintJSON struct {
	SprintID int    `json:"sprint_id"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

type snapshotJSON struct {
	SprintID int     `json:"sprint_id"`
	Date     string  `json:"date"`
	Points   float64 `json:"points"`
}

type backlogJSON struct {
	Items     []schema.BacklogItem   `json:"items"`
	Remaining schema.RemainingPoints `json:"remaining"`
}

// PrintSprints outputs the sprint windows in the configured format.
func PrintSprints(sprints []schema.SprintWindow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSprints(w, sprints, cfg)
	}, "Wrote sprint list")
}

// WriteSprints writes the sprint windows to w.
func WriteSprints(w io.Writer, sprints []schema.SprintWindow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		out := make([]sprintJSON, 0, len(sprints))
		for _, s := range sprints {
			out = append(out, sprintJSON{SprintID: s.SprintID, Start: schema.FormatDate(s.Start), End: schema.FormatDate(s.End)})
		}
		return writeJSON(w, out)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"sprint_id", "start", "end"}, func(cw *csv.Writer) error {
			for _, s := range sprints {
				if err := cw.Write([]string{fmt.Sprint(s.SprintID), schema.FormatDate(s.Start), schema.FormatDate(s.End)}); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	default:
		data := make([][]string, 0, len(sprints))
		for _, s := range sprints {
			data = append(data, []string{fmt.Sprint(s.SprintID), schema.FormatDate(s.Start), schema.FormatDate(s.End)})
		}
		return renderTable(w, []string{"Sprint", "Start", "End"}, data)
	}
}

// PrintBacklog outputs the backlog items of a sprint in the configured format.
func PrintBacklog(items []schema.BacklogItem, remaining schema.RemainingPoints, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteBacklog(w, items, remaining, cfg)
	}, fmt.Sprintf("Wrote backlog of sprint %d", remaining.SprintID))
}

// WriteBacklog writes the backlog items and the remaining point count to w.
func WriteBacklog(w io.Writer, items []schema.BacklogItem, remaining schema.RemainingPoints, cfg *contract.Config) error {
	fmtFloat := newFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if items == nil {
			items = []schema.BacklogItem{}
		}
		return writeJSON(w, backlogJSON{Items: items, Remaining: remaining})
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"id", "sprint_id", "title", "status", "estimate"}, func(cw *csv.Writer) error {
			for _, item := range items {
				estimate := ""
				if item.Estimate != nil {
					estimate = fmtFloat(*item.Estimate)
				}
				if err := cw.Write([]string{item.ID, fmt.Sprint(item.SprintID), item.Title, item.Status, estimate}); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	default:
		statusWidth, estimateWidth := 0, 0
		for _, item := range items {
			statusWidth = max(statusWidth, len(item.Status))
			estimateWidth = max(estimateWidth, len(formatEstimate(item.Estimate, fmtFloat)))
		}
		titleWidth := titleColumnWidth(cfg, statusWidth, estimateWidth)
		data := make([][]string, 0, len(items))
		for _, item := range items {
			data = append(data, []string{
				TruncateText(item.ID, idColumnWidth),
				TruncateText(item.Title, titleWidth),
				item.Status,
				formatEstimate(item.Estimate, fmtFloat),
			})
		}
		if err := renderTable(w, []string{"ID", "Title", "Status", "Estimate"}, data); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Sprint %d: %s points remaining across %d of %d items (%d resolved, %d unestimated)\n",
			remaining.SprintID, fmtFloat(remaining.Points), remaining.Counted, remaining.Items, remaining.Excluded, remaining.Unestimated)
		return nil
	}
}

// PrintSnapshots outputs the recorded snapshots in the configured format.
func PrintSnapshots(snapshots []schema.Snapshot, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSnapshots(w, snapshots, cfg)
	}, "Wrote snapshot list")
}

// WriteSnapshots writes the snapshots to w in recording order.
func WriteSnapshots(w io.Writer, snapshots []schema.Snapshot, cfg *contract.Config) error {
	fmtFloat := newFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		out := make([]snapshotJSON, 0, len(snapshots))
		for _, s := range snapshots {
			out = append(out, snapshotJSON{SprintID: s.SprintID, Date: schema.FormatDate(s.Date), Points: s.Points})
		}
		return writeJSON(w, out)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"sprint_id", "date", "points"}, func(cw *csv.Writer) error {
			for _, s := range snapshots {
				if err := cw.Write([]string{fmt.Sprint(s.SprintID), schema.FormatDate(s.Date), fmtFloat(s.Points)}); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	default:
		data := make([][]string, 0, len(snapshots))
		for _, s := range snapshots {
			data = append(data, []string{fmt.Sprint(s.SprintID), schema.FormatDate(s.Date), fmtFloat(s.Points)})
		}
		return renderTable(w, []string{"Sprint", "Date", "Points"}, data)
	}
}

// renderTable renders a right-aligned table with the given header.
func renderTable(w io.Writer, header []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
