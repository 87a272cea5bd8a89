package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
)

// missingCell fills table and CSV cells for days a series does not cover.
const missingCell = "-"

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	return writeRows(csvWriter)
}

// newFloatFormatter formats point values at the configured precision.
func newFloatFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// cellAt formats values[i], or returns missingCell when the series is shorter than i.
func cellAt(values []float64, i int, fmtFloat func(float64) string) string {
	if i >= len(values) {
		return missingCell
	}
	return fmtFloat(values[i])
}

// dateAt formats dates[i] as a civil date, or returns missingCell.
func dateAt(dates []time.Time, i int) string {
	if i >= len(dates) {
		return missingCell
	}
	return schema.FormatDate(dates[i])
}

// TruncateText shortens s to at most maxWidth runes, marking the cut with "...".
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if maxWidth <= 0 || len(runes) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}

// formatEstimate renders an optional estimate.
func formatEstimate(estimate *float64, fmtFloat func(float64) string) string {
	if estimate == nil {
		return missingCell
	}
	return fmtFloat(*estimate)
}

// paceLabel renders the pace label, colored when the table output allows it.
func paceLabel(p schema.PaceStatus, useColors bool) string {
	if useColors {
		return contract.GetColorPace(p)
	}
	return contract.GetPlainPace(p)
}
