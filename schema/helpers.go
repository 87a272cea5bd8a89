package schema

import "time"

// FormatDate renders the civil date of t without converting its location.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

// ParseDate parses a civil date. The result is midnight UTC of that date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// Estimate returns a pointer to v, for building BacklogItem values.
func Estimate(v float64) *float64 {
	return &v
}
