package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sprintburn/sprintburn/schema"
)

// Color variables for console output.
var (
	AheadColor   = color.New(color.FgGreen, color.Bold) // AheadColor marks work burning faster than planned.
	OnTrackColor = color.New(color.FgCyan)              // OnTrackColor is informational.
	BehindColor  = color.New(color.FgRed, color.Bold)   // BehindColor marks a sprint at risk.
	UnknownColor = color.New(color.FgYellow)
)

// GetPlainPace returns the pace label as plain text, used for CSV, JSON and table printing.
func GetPlainPace(p schema.PaceStatus) string {
	if p == "" {
		return string(schema.PaceUnknown)
	}
	return string(p)
}

// GetColorPace returns a colored pace label for console output (table).
func GetColorPace(p schema.PaceStatus) string {
	text := GetPlainPace(p)

	switch schema.PaceStatus(text) {
	case schema.PaceAhead:
		return AheadColor.Sprint(text)
	case schema.PaceOnTrack:
		return OnTrackColor.Sprint(text)
	case schema.PaceBehind:
		return BehindColor.Sprint(text)
	default:
		return UnknownColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
