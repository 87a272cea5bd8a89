package core

import (
	"iter"
	"time"
)

// EndBound says whether the end date of a range belongs to the range.
type EndBound int

// Range end conventions. There is no default; callers pick one.
const (
	EndExclusive EndBound = iota + 1
	EndInclusive
)

const secondsPerDay = 24 * 60 * 60

// Calendar classifies and enumerates civil dates for one timezone.
//
// Every time.Time passed to a Calendar is read as a civil date in its own location.
// The only instant-to-date conversion is Today, which maps a wall clock reading into
// the calendar's location. Build one Calendar per run and pass it down.
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a calendar for loc. A nil location means UTC.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// Location returns the calendar's timezone.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Today returns the civil date of the instant now in the calendar's timezone.
func (c Calendar) Today(now time.Time) time.Time {
	return c.Day(now.In(c.Location()))
}

// Day truncates t to midnight of its civil date, expressed in the calendar's timezone.
func (c Calendar) Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location())
}

// AddDays moves the civil date of t by n days.
func (c Calendar) AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, c.Location())
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func (c Calendar) IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// DaysBetween returns the number of whole calendar days from from to to.
// The count is negative when to precedes from. DST transitions never skew it, and
// it stays exact across the whole year 1..9999 range.
func (c Calendar) DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC).Unix()
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Unix()
	return int((b - a) / secondsPerDay)
}

// EnumerateDays yields every civil date from start to end in ascending order.
// The sequence is finite and can be ranged over any number of times.
// With skipWeekends, Saturdays and Sundays are left out entirely.
func (c Calendar) EnumerateDays(start, end time.Time, bound EndBound, skipWeekends bool) iter.Seq[time.Time] {
	span := c.DaysBetween(start, end)
	if bound == EndInclusive {
		span++
	}
	return func(yield func(time.Time) bool) {
		for i := range max(span, 0) {
			day := c.AddDays(start, i)
			if skipWeekends && c.IsWeekend(day) {
				continue
			}
			if !yield(day) {
				return
			}
		}
	}
}

// CountWeekdays counts the non-weekend dates between start and end.
func (c Calendar) CountWeekdays(start, end time.Time, bound EndBound) int {
	n := 0
	for range c.EnumerateDays(start, end, bound, true) {
		n++
	}
	return n
}

// ClosingDay returns the last date plotted for a sprint. It is the sprint end,
// pushed to the day after start when the sprint is a single day long.
func (c Calendar) ClosingDay(start, end time.Time) time.Time {
	if c.DaysBetween(start, end) < 1 {
		return c.AddDays(start, 1)
	}
	return c.Day(end)
}
