package contract

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sprintburn/sprintburn/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainPace(t *testing.T) {
	assert.Equal(t, "Ahead", GetPlainPace(schema.PaceAhead))
	assert.Equal(t, "On Track", GetPlainPace(schema.PaceOnTrack))
	assert.Equal(t, "Unknown", GetPlainPace(""))
}

func TestGetColorPace(t *testing.T) {
	tests := []struct {
		name string
		pace schema.PaceStatus
	}{
		{"ahead", schema.PaceAhead},
		{"on track", schema.PaceOnTrack},
		{"behind", schema.PaceBehind},
		{"unknown", schema.PaceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorPace(tt.pace)
			// Should contain the plain label
			assert.Contains(t, result, string(tt.pace))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		in          string
		want        bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBoolString(tt.in)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetDBFilePath(t *testing.T) {
	path := GetDBFilePath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".sprintburn.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestNewLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "debug", "json")
		require.NoError(t, err)
		logger.Debug("snapshot recorded", "sprint", 7)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "snapshot recorded", entry["msg"])
		assert.EqualValues(t, 7, entry["sprint"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "warn", "text")
		require.NoError(t, err)
		logger.Info("hidden")
		assert.Empty(t, buf.String())
		logger.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := NewLogger(nil, "loud", "text")
		assert.Error(t, err)
		_, err = NewLogger(nil, "info", "yaml")
		assert.Error(t, err)
	})
}
