package contract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sprintburn/sprintburn/schema"
)

// Default values for configuration.
const (
	DefaultPrecision     = 2
	DefaultStatusExclude = "^(Done|Closed|Resolved)"
	DefaultChartDir      = "./out"
	DefaultTimezone      = "Local"
	DefaultLogLevel      = "info"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a burndown run.
// This struct is the "final, validated" config.
type Config struct {
	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	SprintID        int // 0 = latest sprint
	IncludeWeekends bool
	StatusExclude   *regexp.Regexp
	ZeroWorkdays    schema.ZeroWorkdayPolicy
	Record          bool

	// Location is the one timezone used to classify dates for the whole run.
	Location *time.Location

	// Today is the injected current date, already expressed in Location.
	Today time.Time
	// TodayPinned is set when --today was given. Long-lived servers re-resolve
	// Today per request otherwise.
	TodayPinned bool

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	ChartDir    string
	MetricsFile string

	// --- Entry fields for sprint/backlog/snapshot/seed commands ---
	SprintStart    time.Time
	SprintEnd      time.Time
	ItemID         string
	ItemTitle      string
	ItemStatus     string
	ItemEstimate   *float64
	SnapshotPoints *float64
	SeedFile       string

	Logger *slog.Logger
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	StoreBackend    string `mapstructure:"store-backend"`
	StoreDBConnect  string `mapstructure:"store-db-connect"`
	Sprint          int    `mapstructure:"sprint"`
	IncludeWeekends string `mapstructure:"include-weekends"`
	StatusExclude   string `mapstructure:"status-exclude"`
	Timezone        string `mapstructure:"timezone"`
	Today           string `mapstructure:"today"`
	ZeroWorkdays    string `mapstructure:"zero-workdays"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	LogLevel        string `mapstructure:"log-level"`
	LogFormat       string `mapstructure:"log-format"`

	// --- Fields from chartCmd.Flags() ---
	ChartDir    string `mapstructure:"chart-dir"`
	Record      string `mapstructure:"record"`
	MetricsFile string `mapstructure:"metrics-file"`

	// --- Fields from sprintAddCmd.Flags() ---
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`

	// --- Fields from backlogAddCmd.Flags() ---
	ItemID   string `mapstructure:"id"`
	Title    string `mapstructure:"title"`
	Status   string `mapstructure:"status"`
	Estimate string `mapstructure:"estimate"`

	// --- Fields from snapshotRecordCmd.Flags() ---
	Points string `mapstructure:"points"`

	// --- Fields from seedCmd.Flags() ---
	File string `mapstructure:"file"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ItemEstimate != nil {
		v := *c.ItemEstimate
		clone.ItemEstimate = &v
	}
	if c.SnapshotPoints != nil {
		v := *c.SnapshotPoints
		clone.SnapshotPoints = &v
	}
	return &clone
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. now is the wall clock reading of this run.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time, logOut io.Writer) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processCalendar(cfg, input, now); err != nil {
		return err
	}
	if err := processEntryInputs(cfg, input); err != nil {
		return err
	}
	logger, err := NewLogger(logOut, input.LogLevel, input.LogFormat)
	if err != nil {
		return err
	}
	cfg.Logger = logger
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for the host:port address")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	default:
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql", backend)
	}
	return nil
}

// validateBackendConfig validates the store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// validateSimpleInputs processes and validates all flat fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.MetricsFile = input.MetricsFile
	cfg.ChartDir = input.ChartDir
	if cfg.ChartDir == "" {
		cfg.ChartDir = DefaultChartDir
	}

	// --- 1. Boolean strings ---
	colors, err := parseBoolDefault(input.Color, true)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	weekends, err := parseBoolDefault(input.IncludeWeekends, true)
	if err != nil {
		return fmt.Errorf("invalid --include-weekends value: %w", err)
	}
	cfg.IncludeWeekends = weekends

	record, err := parseBoolDefault(input.Record, true)
	if err != nil {
		return fmt.Errorf("invalid --record value: %w", err)
	}
	cfg.Record = record

	// --- 2. Sprint Validation ---
	if input.Sprint < 0 {
		return fmt.Errorf("sprint must be 0 (latest) or a positive sprint number (received %d)", input.Sprint)
	}
	cfg.SprintID = input.Sprint

	// --- 3. Status exclude pattern ---
	pattern := input.StatusExclude
	if pattern == "" {
		pattern = DefaultStatusExclude
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid --status-exclude pattern %q: %w", pattern, err)
	}
	cfg.StatusExclude = re

	// --- 4. Zero working day policy ---
	cfg.ZeroWorkdays = schema.ZeroWorkdayPolicy(strings.ToLower(input.ZeroWorkdays))
	if cfg.ZeroWorkdays == "" {
		cfg.ZeroWorkdays = schema.ZeroWorkdaysError
	}
	if _, ok := schema.ValidZeroWorkdayPolicies[cfg.ZeroWorkdays]; !ok {
		return fmt.Errorf("invalid zero-workdays policy '%s'. must be error, flat", input.ZeroWorkdays)
	}

	// --- 5. Precision and Output Validation ---
	precision := input.Precision
	if precision == 0 {
		precision = DefaultPrecision
	}
	if precision < 1 || precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", precision)
	}
	cfg.Precision = precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	return nil
}

// processCalendar resolves the timezone once and fixes "today" for the run.
func processCalendar(cfg *Config, input *ConfigRawInput, now time.Time) error {
	loc, err := LoadLocation(input.Timezone)
	if err != nil {
		return err
	}
	cfg.Location = loc

	if input.Today != "" {
		day, err := ParseDateIn(input.Today, loc)
		if err != nil {
			return fmt.Errorf("invalid --today value: %w", err)
		}
		cfg.Today = day
		cfg.TodayPinned = true
		return nil
	}
	y, m, d := now.In(loc).Date()
	cfg.Today = time.Date(y, m, d, 0, 0, 0, 0, loc)
	return nil
}

// processEntryInputs parses the fields used by the data entry commands.
func processEntryInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Start != "" {
		start, err := ParseDateIn(input.Start, cfg.Location)
		if err != nil {
			return fmt.Errorf("invalid --start value: %w", err)
		}
		cfg.SprintStart = start
	}
	if input.End != "" {
		end, err := ParseDateIn(input.End, cfg.Location)
		if err != nil {
			return fmt.Errorf("invalid --end value: %w", err)
		}
		cfg.SprintEnd = end
	}
	if !cfg.SprintStart.IsZero() && !cfg.SprintEnd.IsZero() && cfg.SprintEnd.Before(cfg.SprintStart) {
		return fmt.Errorf("--end %s is before --start %s", input.End, input.Start)
	}

	cfg.ItemID = input.ItemID
	cfg.ItemTitle = input.Title
	cfg.ItemStatus = input.Status
	cfg.SeedFile = input.File

	estimate, err := parseOptionalFloat(input.Estimate, "--estimate")
	if err != nil {
		return err
	}
	cfg.ItemEstimate = estimate

	points, err := parseOptionalFloat(input.Points, "--points")
	if err != nil {
		return err
	}
	cfg.SnapshotPoints = points
	return nil
}

// parseBoolDefault is ParseBoolString with a fallback for unset values.
func parseBoolDefault(s string, def bool) (bool, error) {
	if s == "" {
		return def, nil
	}
	return ParseBoolString(s)
}

// parseOptionalFloat parses a non-negative number; the empty string means unset.
func parseOptionalFloat(s, flag string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", flag, s, err)
	}
	if v < 0 {
		return nil, fmt.Errorf("%s must not be negative (received %s)", flag, s)
	}
	return &v, nil
}

// LoadLocation resolves a timezone name. Empty and "Local" mean the process timezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, DefaultTimezone) {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid --timezone value %q: %w", name, err)
	}
	return loc, nil
}

// ParseDateIn parses a YYYY-MM-DD date as midnight in loc.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(schema.DateFormat, strings.TrimSpace(s), loc)
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// GetDBFilePath returns the path to the SQLite DB file for sprint storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sprintburn.db"
	}
	return filepath.Join(homeDir, ".sprintburn.db")
}
