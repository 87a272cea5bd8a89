package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"utc midnight", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), "2024-06-03"},
		{"late evening keeps own location", time.Date(2024, 6, 3, 23, 30, 0, 0, loc), "2024-06-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("14/06/2024")
	assert.Error(t, err)
}

func TestEstimate(t *testing.T) {
	e := Estimate(3.5)
	require.NotNil(t, e)
	assert.InDelta(t, 3.5, *e, 1e-9)
}
