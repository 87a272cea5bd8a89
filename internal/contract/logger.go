package contract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sprintburn/sprintburn/schema"
)

// NewLogger builds the structured logger for a run. Logs go to w, or stderr when w is nil,
// so they never mix with the report on stdout.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	var lvl slog.Level
	switch strings.ToLower(level) {
	case "", DefaultLogLevel:
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", level)
	}

	logFormat := schema.LogFormat(strings.ToLower(format))
	if logFormat == "" {
		logFormat = schema.TextLog
	}
	if _, ok := schema.ValidLogFormats[logFormat]; !ok {
		return nil, fmt.Errorf("invalid log format '%s'. must be text, json", format)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if logFormat == schema.JSONLog {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
