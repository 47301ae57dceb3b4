package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "zenith/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newRun(id string, created time.Time) *RunRecord {
	return &RunRecord{
		ID:                 id,
		CreatedAt:          created,
		AutoTasks:          3,
		ManualTasks:        1,
		TotalAvailableTime: 8,
		UsedHours:          6.5,
		TotalProductivity:  12.25,
		Iterations:         17,
		Status:             "succeeded",
		ElapsedMS:          4,
	}
}

func TestRecordRun(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 2, 9, 30, 0, 123000000, time.UTC)
	run := newRun("run-1", created)

	require.NoError(t, repo.RecordRun(ctx, run))
	assert.Greater(t, run.Seq, int64(0))

	got, err := repo.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Seq, got.Seq)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Equal(t, 3, got.AutoTasks)
	assert.Equal(t, 1, got.ManualTasks)
	assert.InDelta(t, 6.5, got.UsedHours, 1e-12)
	assert.InDelta(t, 12.25, got.TotalProductivity, 1e-12)
	assert.Equal(t, 17, got.Iterations)
	assert.Equal(t, "succeeded", got.Status)
	assert.Nil(t, got.ErrorCode)
	assert.Equal(t, int64(4), got.ElapsedMS)
}

func TestRecordRun_Failed(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	code := "OPTIMIZATION_FAILED"
	run := newRun("run-failed", time.Now())
	run.Status = "failed"
	run.ErrorCode = &code

	require.NoError(t, repo.RecordRun(ctx, run))

	got, err := repo.GetRun(ctx, "run-failed")
	require.NoError(t, err)
	require.NotNil(t, got.ErrorCode)
	assert.Equal(t, code, *got.ErrorCode)
}

func TestRecordRun_DuplicateID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.RecordRun(ctx, newRun("dup", time.Now())))
	err := repo.RecordRun(ctx, newRun("dup", time.Now()))
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}

func TestGetRun_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "not found")
}

func TestListRuns(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.RecordRun(ctx, newRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))))
	}

	all, err := repo.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "run-4", all[0].ID, "newest first")
	assert.Equal(t, "run-0", all[4].ID)

	limited, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "run-4", limited[0].ID)
	assert.Equal(t, "run-3", limited[1].ID)
}

func TestListRuns_Empty(t *testing.T) {
	repo := setupTestDB(t)

	runs, err := repo.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestPruneRuns(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, repo.RecordRun(ctx, newRun(fmt.Sprintf("run-%d", i), time.Now())))
	}

	removed, err := repo.PruneRuns(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	runs, err := repo.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-3", runs[0].ID)

	removed, err = repo.PruneRuns(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestNew_FileDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	repo, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.RecordRun(context.Background(), newRun("persisted", time.Now())))
	require.NoError(t, repo.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetRun(context.Background(), "persisted")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.ID)
}
