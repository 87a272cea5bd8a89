package core

import "github.com/sprintburn/sprintburn/schema"

// paceTolerance is how many points the actual line may drift from the guideline
// and still be on track.
const paceTolerance = 0.5

// ComputePace compares the latest actual value with the guideline value of the same day.
// Past the end of the guideline, its last value is used.
func ComputePace(ds schema.ChartDataset) schema.PaceStatus {
	if len(ds.Actual) == 0 || len(ds.Ideal) == 0 {
		return schema.PaceUnknown
	}
	i := len(ds.Actual) - 1
	actual := ds.Actual[i]
	ideal := ds.Ideal[min(i, len(ds.Ideal)-1)]
	switch {
	case actual < ideal-paceTolerance:
		return schema.PaceAhead
	case actual > ideal+paceTolerance:
		return schema.PaceBehind
	default:
		return schema.PaceOnTrack
	}
}
