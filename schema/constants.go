package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for sprint data.
	DatabaseBackend string

	// ZeroWorkdayPolicy decides what happens when a sprint has no working days.
	ZeroWorkdayPolicy string

	// PaceStatus compares the latest actual value against the guideline.
	PaceStatus string

	// LogFormat represents the structured log encoding.
	LogFormat string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// Zero working day policies.
const (
	ZeroWorkdaysError ZeroWorkdayPolicy = "error" // default
	ZeroWorkdaysFlat  ZeroWorkdayPolicy = "flat"
)

// Pace statuses.
const (
	PaceAhead   PaceStatus = "Ahead"
	PaceOnTrack PaceStatus = "On Track"
	PaceBehind  PaceStatus = "Behind"
	PaceUnknown PaceStatus = "Unknown"
)

// Log formats.
const (
	TextLog LogFormat = "text" // default
	JSONLog LogFormat = "json"
)

// DateFormat is the civil date layout used for flags, storage and output.
const DateFormat = "2006-01-02"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ValidZeroWorkdayPolicies lists all valid zero working day policies.
var ValidZeroWorkdayPolicies = map[ZeroWorkdayPolicy]struct{}{
	ZeroWorkdaysError: {},
	ZeroWorkdaysFlat:  {},
}

// ValidLogFormats lists all valid log formats.
var ValidLogFormats = map[LogFormat]struct{}{
	TextLog: {},
	JSONLog: {},
}
