package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/sprintburn/sprintburn/internal/contract"
	"github.com/sprintburn/sprintburn/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// Table names for sprint storage.
const (
	sprintsTable   = "sprintburn_sprints"
	backlogTable   = "sprintburn_backlog_items"
	snapshotsTable = "sprintburn_daily_snapshots"
)

// storeTables lists the tables in creation order.
var storeTables = []string{sprintsTable, backlogTable, snapshotsTable}

// SprintStoreImpl implements the SprintStore interface on top of database/sql.
type SprintStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
	now        func() time.Time
}

var _ contract.SprintStore = &SprintStoreImpl{} // Compile-time check

// driverFor returns the database/sql driver name of a backend.
func driverFor(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql", backend)
	}
}

// openDB opens and pings the database of a backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	driverName, err := driverFor(backend)
	if err != nil {
		return nil, "", err
	}

	var db *sql.DB
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open PostgreSQL database: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, "", fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, driverName, nil
}

// NewSprintStore opens the store of a backend and makes sure its tables exist.
func NewSprintStore(backend schema.DatabaseBackend, connStr string) (*SprintStoreImpl, error) {
	db, driverName, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := createTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create sprint tables: %w", err)
	}

	return &SprintStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
		now:        time.Now,
	}, nil
}

// createTables applies every "up" statement of the backend's migrations. They all use
// IF NOT EXISTS, so a store opened after "store migrate" is left untouched.
func createTables(db *sql.DB, backend schema.DatabaseBackend) error {
	dir, err := migrationsDir(backend)
	if err != nil {
		return err
	}
	files, err := fs.Glob(migrationsFS, dir+"/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	for _, file := range files {
		query, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if _, err := db.Exec(string(query)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", file, err)
		}
	}
	return nil
}

// --- Sprints ---

// FetchSprintWindow returns the sprint with the given number. Zero means the latest sprint.
func (s *SprintStoreImpl) FetchSprintWindow(ctx context.Context, sprintID int) (schema.SprintWindow, error) {
	table := quoteTableName(sprintsTable, s.backend)

	var row *sql.Row
	if sprintID == 0 {
		query := fmt.Sprintf(`SELECT sprint_id, start_date, end_date FROM %s ORDER BY sprint_id DESC LIMIT 1`, table)
		row = s.db.QueryRowContext(ctx, query)
	} else {
		query := fmt.Sprintf(`SELECT sprint_id, start_date, end_date FROM %s WHERE sprint_id = %s`, table, placeholder(s.backend, 1))
		row = s.db.QueryRowContext(ctx, query, sprintID)
	}

	var w schema.SprintWindow
	var start, end string
	if err := row.Scan(&w.SprintID, &start, &end); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if sprintID == 0 {
				return w, fmt.Errorf("%w: no sprints recorded yet", contract.ErrSprintNotFound)
			}
			return w, fmt.Errorf("%w: sprint %d", contract.ErrSprintNotFound, sprintID)
		}
		return w, fmt.Errorf("failed to fetch sprint %d: %w", sprintID, err)
	}
	return scanWindow(w, start, end)
}

// ListSprints returns all sprints ordered by descending number.
func (s *SprintStoreImpl) ListSprints(ctx context.Context) ([]schema.SprintWindow, error) {
	query := fmt.Sprintf(`SELECT sprint_id, start_date, end_date FROM %s ORDER BY sprint_id DESC`, quoteTableName(sprintsTable, s.backend))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sprints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SprintWindow
	for rows.Next() {
		var w schema.SprintWindow
		var start, end string
		if err := rows.Scan(&w.SprintID, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan sprint: %w", err)
		}
		w, err = scanWindow(w, start, end)
		if err != nil {
			return nil, err
		}
		results = append(results, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sprints: %w", err)
	}
	return results, nil
}

func scanWindow(w schema.SprintWindow, start, end string) (schema.SprintWindow, error) {
	var err error
	if w.Start, err = parseDate(start); err != nil {
		return w, err
	}
	if w.End, err = parseDate(end); err != nil {
		return w, err
	}
	return w, nil
}

// UpsertSprint creates or replaces a sprint window.
func (s *SprintStoreImpl) UpsertSprint(ctx context.Context, w schema.SprintWindow) error {
	if w.SprintID <= 0 {
		return fmt.Errorf("sprint number must be positive (received %d)", w.SprintID)
	}
	table := quoteTableName(sprintsTable, s.backend)

	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (sprint_id, start_date, end_date) VALUES (?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE start_date = new.start_date, end_date = new.end_date`, table)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (sprint_id, start_date, end_date) VALUES ($1, $2, $3)
			ON CONFLICT (sprint_id) DO UPDATE SET start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date`, table)
	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (sprint_id, start_date, end_date) VALUES (?, ?, ?)`, table)
	}

	if _, err := s.db.ExecContext(ctx, query, w.SprintID, formatDate(w.Start), formatDate(w.End)); err != nil {
		return fmt.Errorf("failed to upsert sprint %d: %w", w.SprintID, err)
	}
	return nil
}

// --- Backlog ---

// FetchBacklogItems returns every backlog item of a sprint ordered by id.
func (s *SprintStoreImpl) FetchBacklogItems(ctx context.Context, sprintID int) ([]schema.BacklogItem, error) {
	query := fmt.Sprintf(`SELECT item_id, sprint_id, title, status, estimate FROM %s WHERE sprint_id = %s ORDER BY item_id`,
		quoteTableName(backlogTable, s.backend), placeholder(s.backend, 1))
	rows, err := s.db.QueryContext(ctx, query, sprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to query backlog of sprint %d: %w", sprintID, err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.BacklogItem
	for rows.Next() {
		var item schema.BacklogItem
		var estimate sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.SprintID, &item.Title, &item.Status, &estimate); err != nil {
			return nil, fmt.Errorf("failed to scan backlog item: %w", err)
		}
		if estimate.Valid {
			item.Estimate = schema.Estimate(estimate.Float64)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating backlog items: %w", err)
	}
	return results, nil
}

// AddBacklogItem creates or replaces a backlog item.
func (s *SprintStoreImpl) AddBacklogItem(ctx context.Context, item schema.BacklogItem) error {
	if item.ID == "" {
		return errors.New("backlog item id cannot be empty")
	}
	table := quoteTableName(backlogTable, s.backend)

	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (item_id, sprint_id, title, status, estimate) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE sprint_id = new.sprint_id, title = new.title, status = new.status, estimate = new.estimate`, table)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (item_id, sprint_id, title, status, estimate) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (item_id) DO UPDATE SET sprint_id = EXCLUDED.sprint_id, title = EXCLUDED.title, status = EXCLUDED.status, estimate = EXCLUDED.estimate`, table)
	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (item_id, sprint_id, title, status, estimate) VALUES (?, ?, ?, ?, ?)`, table)
	}

	var estimate sql.NullFloat64
	if item.Estimate != nil {
		estimate = sql.NullFloat64{Float64: *item.Estimate, Valid: true}
	}
	if _, err := s.db.ExecContext(ctx, query, item.ID, item.SprintID, item.Title, item.Status, estimate); err != nil {
		return fmt.Errorf("failed to upsert backlog item %s: %w", item.ID, err)
	}
	return nil
}

// --- Snapshots ---

// FetchDailySnapshots returns the snapshots of a sprint in insertion order.
func (s *SprintStoreImpl) FetchDailySnapshots(ctx context.Context, sprintID int) ([]schema.Snapshot, error) {
	query := fmt.Sprintf(`SELECT sprint_id, snapshot_date, points FROM %s WHERE sprint_id = %s ORDER BY snapshot_id`,
		quoteTableName(snapshotsTable, s.backend), placeholder(s.backend, 1))
	rows, err := s.db.QueryContext(ctx, query, sprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots of sprint %d: %w", sprintID, err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.Snapshot
	for rows.Next() {
		var snap schema.Snapshot
		var date string
		if err := rows.Scan(&snap.SprintID, &date, &snap.Points); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if snap.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		results = append(results, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return results, nil
}

// RecordDailySnapshot appends a snapshot. It is not idempotent: reruns add duplicates.
func (s *SprintStoreImpl) RecordDailySnapshot(ctx context.Context, sprintID int, date time.Time, points float64) error {
	query := fmt.Sprintf(`INSERT INTO %s (sprint_id, snapshot_date, points, recorded_at) VALUES (%s)`,
		quoteTableName(snapshotsTable, s.backend), placeholders(s.backend, 4))
	if _, err := s.db.ExecContext(ctx, query, sprintID, formatDate(date), points, formatTime(s.now().UTC(), s.backend)); err != nil {
		return fmt.Errorf("failed to record snapshot for sprint %d: %w", sprintID, err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *SprintStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStatus returns status information about the sprint store.
func (s *SprintStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.db == nil {
		return status, nil
	}

	for _, table := range storeTables {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))
		var count int64
		if err := s.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalSprints = int(status.TableSizes[sprintsTable])
	status.TotalSnapshots = int(status.TableSizes[snapshotsTable])

	if status.TotalSprints > 0 {
		query := fmt.Sprintf("SELECT MAX(sprint_id) FROM %s", quoteTableName(sprintsTable, s.backend))
		if err := s.db.QueryRow(query).Scan(&status.LatestSprintID); err != nil {
			return status, fmt.Errorf("failed to get latest sprint: %w", err)
		}
	}

	if status.TotalSnapshots > 0 {
		query := fmt.Sprintf("SELECT MAX(snapshot_date) FROM %s", quoteTableName(snapshotsTable, s.backend))
		var last sql.NullString
		if err := s.db.QueryRow(query).Scan(&last); err != nil {
			return status, fmt.Errorf("failed to get last snapshot date: %w", err)
		}
		if last.Valid {
			date, err := parseDate(last.String)
			if err != nil {
				return status, err
			}
			status.LastSnapshotDate = date
		}
	}

	status.DatabaseBytes = s.databaseSize(status)
	return status, nil
}

// databaseSize estimates the bytes used by the store. Failures fall back to a rough estimate.
func (s *SprintStoreImpl) databaseSize(status schema.StoreStatus) int64 {
	var rows int64
	for _, n := range status.TableSizes {
		rows += n
	}
	estimate := rows * 100

	var size sql.NullInt64
	switch s.backend {
	case schema.SQLiteBackend:
		query := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := s.db.QueryRow(query).Scan(&size); err != nil {
			return estimate
		}

	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(s.connStr)
		if err != nil || cfg.DBName == "" {
			return estimate
		}
		query := fmt.Sprintf("SELECT SUM(data_length + index_length) FROM information_schema.tables WHERE table_schema = ? AND table_name IN (%s)",
			placeholders(s.backend, len(storeTables)))
		args := []any{cfg.DBName}
		for _, table := range storeTables {
			args = append(args, table)
		}
		if err := s.db.QueryRow(query, args...).Scan(&size); err != nil {
			return estimate
		}

	case schema.PostgreSQLBackend:
		query := "SELECT pg_total_relation_size($1) + pg_total_relation_size($2) + pg_total_relation_size($3)"
		if err := s.db.QueryRow(query, sprintsTable, backlogTable, snapshotsTable).Scan(&size); err != nil {
			return estimate
		}
	}

	if !size.Valid {
		return estimate
	}
	return size.Int64
}
