package core

import (
	"time"

	"github.com/sprintburn/sprintburn/schema"
)

// AssembleInput holds everything AssembleDataset needs. Today is the injected current date.
type AssembleInput struct {
	Window          schema.SprintWindow
	Snapshots       []schema.Snapshot
	Today           time.Time
	IncludeWeekends bool
	ZeroWorkdays    schema.ZeroWorkdayPolicy
}

// Assembly is a chart dataset plus what was learned while building it.
type Assembly struct {
	Dataset     schema.ChartDataset
	WorkingDays int
	Warnings    []DuplicateSnapshotWarning
}

// AssembleDataset aligns the actual series and the guideline under day labels 1..N.
//
// Working days are the weekdays from start up to, but not including, the closing day.
// The guideline starts at the first actual value. N is the longer of the two series.
func AssembleDataset(cal Calendar, in AssembleInput) (Assembly, error) {
	w := in.Window
	if err := validateWindow(cal, w); err != nil {
		return Assembly{}, err
	}

	closing := cal.ClosingDay(w.Start, w.End)
	workingDays := cal.CountWeekdays(w.Start, closing, EndExclusive)

	actual, err := Densify(cal, in.Snapshots, w.Start, cal.DaysBetween(w.Start, in.Today), in.IncludeWeekends)
	if err != nil {
		return Assembly{}, err
	}

	ideal, err := GenerateGuideline(cal, GuidelineParams{
		Start:           w.Start,
		End:             w.End,
		InitialPoints:   actual.Values[0],
		WorkingDays:     workingDays,
		IncludeWeekends: in.IncludeWeekends,
		ZeroWorkdays:    in.ZeroWorkdays,
	})
	if err != nil {
		return Assembly{}, err
	}

	n := max(len(actual.Values), len(ideal.Values))
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i + 1
	}
	dates := ideal.Dates
	if len(actual.Dates) > len(dates) {
		dates = actual.Dates
	}

	return Assembly{
		Dataset: schema.ChartDataset{
			Labels: labels,
			Dates:  dates,
			Actual: actual.Values,
			Ideal:  ideal.Values,
		},
		WorkingDays: workingDays,
		Warnings:    actual.Warnings,
	}, nil
}
