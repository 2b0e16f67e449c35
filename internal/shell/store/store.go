package store

import (
	"context"
	"time"
)

// =============================================================================
// Data Types
// =============================================================================

// Run is a persisted record of a single dependency analysis.
type Run struct {
	ID             string    `db:"id" json:"id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	DockerVersion  string    `db:"docker_version" json:"docker_version"`
	ContainerCount int       `db:"container_count" json:"container_count"`
	EdgeCount      int       `db:"edge_count" json:"edge_count"`
	CycleCount     int       `db:"cycle_count" json:"cycle_count"`
	PhaseCount     int       `db:"phase_count" json:"phase_count"`
	TimeSavingsPct float64   `db:"time_savings_percent" json:"time_savings_percent"`
	ArtifactPath   string    `db:"artifact_path" json:"artifact_path"`
	Report         string    `db:"report" json:"-"`
}

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for analysis runs.
type Store interface {
	// SaveRun persists a completed analysis run.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns retrieves runs ordered newest first, up to limit.
	// A limit of 0 or less returns all runs.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// LatestRun retrieves the most recent run.
	LatestRun(ctx context.Context) (*Run, error)

	// Close closes the underlying database connection.
	Close() error
}
