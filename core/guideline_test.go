package core

import (
	"math"
	"testing"
	"time"

	"github.com/sprintburn/sprintburn/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGuidelineWeekendsExcluded(t *testing.T) {
	cal := NewCalendar(time.UTC)
	start, end := day("2024-06-03"), day("2024-06-14")

	g, err := GenerateGuideline(cal, GuidelineParams{
		Start:         start,
		End:           end,
		InitialPoints: 40,
		WorkingDays:   cal.CountWeekdays(start, end, EndExclusive),
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 35.56, 31.11, 26.67, 22.22, 17.78, 13.33, 8.89, 4.44, 0}, g.Values)
	require.Len(t, g.Dates, 10)
	assert.Equal(t, "2024-06-10", schema.FormatDate(g.Dates[5]))
	assert.Equal(t, "2024-06-14", schema.FormatDate(g.Dates[9]))
}

func TestGenerateGuidelineWeekendsIncluded(t *testing.T) {
	cal := NewCalendar(time.UTC)
	start, end := day("2024-06-03"), day("2024-06-14")

	g, err := GenerateGuideline(cal, GuidelineParams{
		Start:           start,
		End:             end,
		InitialPoints:   40,
		WorkingDays:     9,
		IncludeWeekends: true,
	})
	require.NoError(t, err)
	// Saturday and Sunday carry the Friday value.
	assert.Equal(t, []float64{40, 35.56, 31.11, 26.67, 22.22, 17.78, 17.78, 17.78, 13.33, 8.89, 4.44, 0}, g.Values)
	assert.Len(t, g.Dates, 12)
}

func TestGenerateGuidelineSingleDaySprint(t *testing.T) {
	cal := NewCalendar(time.UTC)
	for _, includeWeekends := range []bool{true, false} {
		start := day("2024-06-05")
		g, err := GenerateGuideline(cal, GuidelineParams{
			Start:           start,
			End:             start,
			InitialPoints:   8,
			WorkingDays:     cal.CountWeekdays(start, cal.ClosingDay(start, start), EndExclusive),
			IncludeWeekends: includeWeekends,
		})
		require.NoError(t, err)
		assert.Equal(t, []float64{8, 0}, g.Values)
		assert.Equal(t, "2024-06-06", schema.FormatDate(g.Dates[1]))
	}
}

func TestGenerateGuidelineZeroWorkingDays(t *testing.T) {
	cal := NewCalendar(time.UTC)
	saturday := day("2024-06-08")
	params := GuidelineParams{Start: saturday, End: saturday, InitialPoints: 6}

	_, err := GenerateGuideline(cal, params)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	params.ZeroWorkdays = schema.ZeroWorkdaysFlat
	for _, includeWeekends := range []bool{true, false} {
		params.IncludeWeekends = includeWeekends
		g, err := GenerateGuideline(cal, params)
		require.NoError(t, err)
		assert.Equal(t, []float64{6, 6}, g.Values)
	}
}

func TestGenerateGuidelineNegativeInitialPoints(t *testing.T) {
	cal := NewCalendar(time.UTC)
	_, err := GenerateGuideline(cal, GuidelineParams{
		Start:         day("2024-06-03"),
		End:           day("2024-06-07"),
		InitialPoints: -40,
		WorkingDays:   4,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestRoundPoints(t *testing.T) {
	assert.InDelta(t, 4.44, roundPoints(40.0/9), 1e-12)
	assert.InDelta(t, 0.01, roundPoints(0.005), 1e-12)
	assert.False(t, math.Signbit(roundPoints(-0.001)), "negative zero is normalized")
	assert.False(t, math.Signbit(roundPoints(math.Copysign(0, -1))))
}

func FuzzGenerateGuideline(f *testing.F) {
	f.Add(40.0, int64(19877), 11, false)
	f.Add(13.0, int64(19881), 0, true)
	f.Add(0.5, int64(19880), 30, true)
	f.Fuzz(func(t *testing.T, initial float64, startDay int64, span int, includeWeekends bool) {
		if math.IsNaN(initial) || initial < 0 || initial > 1e6 || span < 0 || span > 120 || startDay < 0 || startDay > 40000 {
			t.Skip()
		}
		cal := NewCalendar(time.UTC)
		start := time.Unix(startDay*86400, 0).UTC()
		end := cal.AddDays(start, span)
		closing := cal.ClosingDay(start, end)

		g, err := GenerateGuideline(cal, GuidelineParams{
			Start:           start,
			End:             end,
			InitialPoints:   initial,
			WorkingDays:     cal.CountWeekdays(start, closing, EndExclusive),
			IncludeWeekends: includeWeekends,
			ZeroWorkdays:    schema.ZeroWorkdaysFlat,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(g.Values) < 2 || len(g.Values) != len(g.Dates) {
			t.Fatalf("bad length %d/%d", len(g.Values), len(g.Dates))
		}
		if g.Values[0] != roundPoints(initial) {
			t.Fatalf("first value %v, want %v", g.Values[0], roundPoints(initial))
		}
		for i, v := range g.Values {
			if math.Abs(v*100-math.Round(v*100)) > 1e-6 {
				t.Fatalf("value %v at %d has more than two decimals", v, i)
			}
			if i > 0 && v > g.Values[i-1] {
				t.Fatalf("increase at %d: %v > %v", i, v, g.Values[i-1])
			}
		}
	})
}
