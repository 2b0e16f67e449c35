package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestStore(t *testing.T) Store {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func newTestRun(t *testing.T, createdAt time.Time) *Run {
	t.Helper()
	return &Run{
		ID:             uuid.New().String(),
		CreatedAt:      createdAt,
		DockerVersion:  "27.0.1",
		ContainerCount: 4,
		EdgeCount:      3,
		CycleCount:     1,
		PhaseCount:     3,
		TimeSavingsPct: 42.5,
		ArtifactPath:   "/tmp/container_dependencies_20250101_120000.json",
		Report:         `{"metadata":{"tool_version":"1.0.0"}}`,
	}
}

func saveTestRun(t *testing.T, store Store, createdAt time.Time) *Run {
	t.Helper()
	run := newTestRun(t, createdAt)
	err := store.SaveRun(context.Background(), run)
	require.NoError(t, err)
	return run
}

// =============================================================================
// SaveRun / GetRun Tests
// =============================================================================

func TestSaveRun_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	run := saveTestRun(t, store, created)

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Equal(t, "27.0.1", got.DockerVersion)
	assert.Equal(t, 4, got.ContainerCount)
	assert.Equal(t, 3, got.EdgeCount)
	assert.Equal(t, 1, got.CycleCount)
	assert.Equal(t, 3, got.PhaseCount)
	assert.InDelta(t, 42.5, got.TimeSavingsPct, 0.001)
	assert.Equal(t, run.ArtifactPath, got.ArtifactPath)
	assert.Equal(t, run.Report, got.Report)
}

func TestSaveRun_DuplicateID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	run := saveTestRun(t, store, time.Now().UTC())

	err := store.SaveRun(ctx, run)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))
}

func TestGetRun_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetRun(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "GetRun", storeErr.Op)
	assert.Equal(t, "run", storeErr.Entity)
}

// =============================================================================
// ListRuns / LatestRun Tests
// =============================================================================

func TestListRuns_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		run := saveTestRun(t, store, base.Add(time.Duration(i)*time.Hour))
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Equal(t, ids[0], runs[2].ID)
}

func TestListRuns_Limit(t *testing.T) {
	store := setupTestStore(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		saveTestRun(t, store, base.Add(time.Duration(i)*time.Minute))
	}

	runs, err := store.ListRuns(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListRuns_Empty(t *testing.T) {
	store := setupTestStore(t)

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLatestRun(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	saveTestRun(t, store, base)
	newest := saveTestRun(t, store, base.Add(time.Hour))

	got, err := store.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, got.ID)
}

func TestLatestRun_Empty(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.LatestRun(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

// =============================================================================
// StoreError Tests
// =============================================================================

func TestStoreError_Format(t *testing.T) {
	err := NewStoreError("SaveRun", "run", "abc", "boom", ErrInvalidData)
	assert.Equal(t, "SaveRun run abc: boom", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidData))

	err = NewStoreError("ListRuns", "run", "", "boom", nil)
	assert.Equal(t, "ListRuns run: boom", err.Error())

	err = NewStoreError("NewSQLiteStore", "", "", "boom", nil)
	assert.Equal(t, "NewSQLiteStore: boom", err.Error())
}

func TestNewSQLiteStore_BadPath(t *testing.T) {
	_, err := NewSQLiteStore("/nonexistent-dir/sub/db.sqlite")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectionFailed) || errors.Is(err, ErrMigrationFailed),
		fmt.Sprintf("unexpected error: %v", err))
}
