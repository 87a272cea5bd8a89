package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFloatFormatter(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{"precision 2", 2, 3.14159, "3.14"},
		{"precision 1", 1, 3.14159, "3.1"},
		{"negative value", 2, -42.567, "-42.57"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, newFloatFormatter(tt.precision)(tt.value))
		})
	}
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "2"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", buf.String())
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a long backlog title", 10, "a long ..."},
		{"abc", 2, "ab"},
		{"ünïcödé title", 6, "ünï..."},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.in, tt.width))
		})
	}
}

func TestCells(t *testing.T) {
	fmtFloat := newFloatFormatter(1)
	assert.Equal(t, "2.0", cellAt([]float64{2}, 0, fmtFloat))
	assert.Equal(t, missingCell, cellAt([]float64{2}, 1, fmtFloat))
	assert.Equal(t, missingCell, dateAt(nil, 0))
	assert.Equal(t, missingCell, formatEstimate(nil, fmtFloat))
	assert.Equal(t, "3.0", formatEstimate(schema.Estimate(3), fmtFloat))
	assert.Equal(t, "Behind", paceLabel(schema.PaceBehind, false))
	assert.Equal(t, "Unknown", paceLabel("", false))
}

func TestTitleColumnWidth(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		status   int
		estimate int
		expected int
	}{
		{"wide terminal capped", 200, 5, 1, maxTitleWidth},
		{"headers set the minimum", 100, 5, 1, 100 - 13 - 12 - 6 - 8},
		{"long status shrinks title", 100, 11, 1, 100 - 13 - 12 - 11 - 8},
		{"narrow terminal floor", 40, 5, 1, minTitleWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, titleColumnWidth(&contract.Config{Width: tt.width}, tt.status, tt.estimate))
		})
	}
}
