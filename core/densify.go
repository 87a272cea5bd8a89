package core

import (
	"time"

	"github.com/sprintburn/sprintburn/schema"
)

// DenseSeries is the result of Densify.
type DenseSeries struct {
	Values   []float64
	Dates    []time.Time
	Warnings []DuplicateSnapshotWarning
}

// Densify turns sparse snapshots into a zero-filled series indexed by day offset from start.
//
// Snapshots are processed in the order given. The first snapshot of a day wins and later
// ones only produce a warning. Every offset up to max(todayOffset, last observed offset)
// is defined; days without a snapshot are 0. With includeWeekends false, weekend slots are
// removed afterwards, so offsets are always computed on the uncompacted calendar.
func Densify(cal Calendar, snapshots []schema.Snapshot, start time.Time, todayOffset int, includeWeekends bool) (DenseSeries, error) {
	var out DenseSeries

	values := make(map[int]float64, len(snapshots))
	last := -1
	for _, s := range snapshots {
		offset := cal.DaysBetween(start, s.Date)
		if offset < 0 {
			return DenseSeries{}, &InvalidSnapshotError{Date: s.Date, Start: start, Offset: offset}
		}
		if kept, ok := values[offset]; ok {
			out.Warnings = append(out.Warnings, DuplicateSnapshotWarning{
				Offset:  offset,
				Date:    cal.AddDays(start, offset),
				Kept:    kept,
				Ignored: s.Points,
			})
			continue
		}
		values[offset] = s.Points
		last = max(last, offset)
	}

	if _, ok := values[0]; !ok {
		return DenseSeries{}, &EmptyDataError{Start: start, Snapshots: len(snapshots)}
	}

	last = max(last, todayOffset)
	out.Values = make([]float64, 0, last+1)
	out.Dates = make([]time.Time, 0, last+1)
	for offset := 0; offset <= last; offset++ {
		out.Values = append(out.Values, values[offset])
		out.Dates = append(out.Dates, cal.AddDays(start, offset))
	}

	if !includeWeekends {
		out.Values, out.Dates = compactWeekends(cal, out.Values, out.Dates)
		if len(out.Values) == 0 {
			return DenseSeries{}, &EmptyDataError{Start: start, Snapshots: len(snapshots)}
		}
	}
	return out, nil
}

// compactWeekends drops every slot whose date is a weekend.
func compactWeekends(cal Calendar, values []float64, dates []time.Time) ([]float64, []time.Time) {
	keptValues := values[:0]
	keptDates := dates[:0]
	for i, d := range dates {
		if cal.IsWeekend(d) {
			continue
		}
		keptValues = append(keptValues, values[i])
		keptDates = append(keptDates, d)
	}
	return keptValues, keptDates
}
