package core

import (
	"fmt"
	"math"
	"time"

	"github.com/sprintburn/sprintburn/schema"
)

// GuidelineParams holds the inputs of GenerateGuideline.
type GuidelineParams struct {
	Start           time.Time
	End             time.Time
	InitialPoints   float64
	WorkingDays     int
	IncludeWeekends bool
	ZeroWorkdays    schema.ZeroWorkdayPolicy
}

// Guideline is the ideal burndown and the dates it was plotted on.
type Guideline struct {
	Values []float64
	Dates  []time.Time
}

// GenerateGuideline produces the ideal linear burndown from InitialPoints to zero.
//
// The walk covers start through the closing day. With weekends included every calendar
// day is a point and a step only burns when the previous day was a weekday, so weekends
// plot flat. With weekends excluded the walk visits the weekdays before the closing day
// and then the closing day itself. Values are rounded to two decimals.
func GenerateGuideline(cal Calendar, p GuidelineParams) (Guideline, error) {
	if p.InitialPoints < 0 {
		return Guideline{}, fmt.Errorf("%w: initial points %v are negative", ErrInvalidSnapshot, p.InitialPoints)
	}
	perDayBurn := 0.0
	switch {
	case p.WorkingDays > 0:
		perDayBurn = p.InitialPoints / float64(p.WorkingDays)
	case p.ZeroWorkdays == schema.ZeroWorkdaysFlat:
		// flat line at the initial value
	default:
		return Guideline{}, &DivisionByZeroError{Start: p.Start, End: p.End}
	}

	closing := cal.ClosingDay(p.Start, p.End)

	var days []time.Time
	if p.IncludeWeekends {
		for d := range cal.EnumerateDays(p.Start, closing, EndInclusive, false) {
			days = append(days, d)
		}
	} else {
		for d := range cal.EnumerateDays(p.Start, closing, EndExclusive, true) {
			days = append(days, d)
		}
		if len(days) == 0 {
			// No weekday before the closing day: keep start so the line has two points.
			days = append(days, cal.Day(p.Start))
		}
		days = append(days, closing)
	}

	out := Guideline{
		Values: make([]float64, 0, len(days)),
		Dates:  days,
	}
	burned := 0
	for i := range days {
		if i > 0 && (!p.IncludeWeekends || !cal.IsWeekend(days[i-1])) {
			burned++
		}
		out.Values = append(out.Values, roundPoints(p.InitialPoints-perDayBurn*float64(burned)))
	}
	return out, nil
}

// roundPoints rounds to two decimals and never returns negative zero.
func roundPoints(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
