package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	// Open database connection
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to open database", ErrConnectionFailed)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", "failed to ping database", ErrConnectionFailed)
	}

	// Run migrations
	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Run Operations
// =============================================================================

// runRow represents an analysis run row in the database.
type runRow struct {
	ID             string  `db:"id"`
	CreatedAt      string  `db:"created_at"`
	DockerVersion  string  `db:"docker_version"`
	ContainerCount int     `db:"container_count"`
	EdgeCount      int     `db:"edge_count"`
	CycleCount     int     `db:"cycle_count"`
	PhaseCount     int     `db:"phase_count"`
	TimeSavingsPct float64 `db:"time_savings_percent"`
	ArtifactPath   string  `db:"artifact_path"`
	Report         string  `db:"report"`
}

// SaveRun persists a completed analysis run.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	query := `
		INSERT INTO analysis_runs (
			id, created_at, docker_version, container_count, edge_count,
			cycle_count, phase_count, time_savings_percent, artifact_path, report
		) VALUES (
			:id, :created_at, :docker_version, :container_count, :edge_count,
			:cycle_count, :phase_count, :time_savings_percent, :artifact_path, :report
		)`

	row := map[string]any{
		"id":                   run.ID,
		"created_at":           run.CreatedAt.Format(time.RFC3339),
		"docker_version":       run.DockerVersion,
		"container_count":      run.ContainerCount,
		"edge_count":           run.EdgeCount,
		"cycle_count":          run.CycleCount,
		"phase_count":          run.PhaseCount,
		"time_savings_percent": run.TimeSavingsPct,
		"artifact_path":        run.ArtifactPath,
		"report":               run.Report,
	}

	_, err := s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: analysis_runs.id") {
			return NewStoreError("SaveRun", "run", run.ID, "run with this ID already exists", ErrDuplicateID)
		}
		return NewStoreError("SaveRun", "run", run.ID, err.Error(), err)
	}

	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	query := `SELECT * FROM analysis_runs WHERE id = ?`

	var row runRow
	err := s.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetRun", "run", id, "run not found", ErrNotFound)
		}
		return nil, NewStoreError("GetRun", "run", id, err.Error(), err)
	}

	return rowToRun(&row), nil
}

// ListRuns retrieves runs ordered newest first, up to limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT * FROM analysis_runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows []runRow
	err := s.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, NewStoreError("ListRuns", "run", "", err.Error(), err)
	}

	runs := make([]*Run, 0, len(rows))
	for i := range rows {
		runs = append(runs, rowToRun(&rows[i]))
	}

	return runs, nil
}

// LatestRun retrieves the most recent run.
func (s *SQLiteStore) LatestRun(ctx context.Context) (*Run, error) {
	query := `SELECT * FROM analysis_runs ORDER BY created_at DESC, id DESC LIMIT 1`

	var row runRow
	err := s.db.GetContext(ctx, &row, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("LatestRun", "run", "", "no runs recorded", ErrNotFound)
		}
		return nil, NewStoreError("LatestRun", "run", "", err.Error(), err)
	}

	return rowToRun(&row), nil
}

// rowToRun converts a database row to a Run.
func rowToRun(row *runRow) *Run {
	createdAt, _ := time.Parse(time.RFC3339, row.CreatedAt)

	return &Run{
		ID:             row.ID,
		CreatedAt:      createdAt,
		DockerVersion:  row.DockerVersion,
		ContainerCount: row.ContainerCount,
		EdgeCount:      row.EdgeCount,
		CycleCount:     row.CycleCount,
		PhaseCount:     row.PhaseCount,
		TimeSavingsPct: row.TimeSavingsPct,
		ArtifactPath:   row.ArtifactPath,
		Report:         row.Report,
	}
}
