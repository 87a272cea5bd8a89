package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/sprintburn/sprintburn/schema"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrEmptyData       = errors.New("empty data")
	ErrInvalidWindow   = errors.New("invalid sprint window")
)

// InvalidSnapshotError reports a snapshot dated before the sprint start.
type InvalidSnapshotError struct {
	Date   time.Time
	Start  time.Time
	Offset int
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("snapshot dated %s predates sprint start %s (offset %d)",
		schema.FormatDate(e.Date), schema.FormatDate(e.Start), e.Offset)
}

// Is makes errors.Is(err, ErrInvalidSnapshot) hold.
func (e *InvalidSnapshotError) Is(target error) bool { return target == ErrInvalidSnapshot }

// DivisionByZeroError reports a sprint without working days.
type DivisionByZeroError struct {
	Start time.Time
	End   time.Time
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("sprint %s..%s has no working days to divide the initial points across",
		schema.FormatDate(e.Start), schema.FormatDate(e.End))
}

// Is makes errors.Is(err, ErrDivisionByZero) hold.
func (e *DivisionByZeroError) Is(target error) bool { return target == ErrDivisionByZero }

// EmptyDataError reports that no snapshot exists for the first sprint day.
type EmptyDataError struct {
	Start     time.Time
	Snapshots int
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("no snapshot recorded on sprint start %s (%d snapshots in total)",
		schema.FormatDate(e.Start), e.Snapshots)
}

// Is makes errors.Is(err, ErrEmptyData) hold.
func (e *EmptyDataError) Is(target error) bool { return target == ErrEmptyData }

// DuplicateSnapshotWarning reports a second snapshot for an already filled day.
// It is informational: the first value is kept.
type DuplicateSnapshotWarning struct {
	Offset  int
	Date    time.Time
	Kept    float64
	Ignored float64
}

func (w DuplicateSnapshotWarning) String() string {
	return fmt.Sprintf("duplicate snapshot on %s (day %d): kept %g, ignored %g",
		schema.FormatDate(w.Date), w.Offset, w.Kept, w.Ignored)
}

// validateWindow checks start <= end.
func validateWindow(cal Calendar, w schema.SprintWindow) error {
	if cal.DaysBetween(w.Start, w.End) < 0 {
		return fmt.Errorf("%w: sprint %d ends %s before it starts %s",
			ErrInvalidWindow, w.SprintID, schema.FormatDate(w.End), schema.FormatDate(w.Start))
	}
	return nil
}
