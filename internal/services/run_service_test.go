package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenith/internal/config"
	"zenith/internal/domain"
	apperrors "zenith/internal/errors"
)

func TestRunService(t *testing.T) {
	repo, err := config.CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	mapper := domain.NewMapper()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		record := mapper.Run.ToDatabase(domain.Run{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			AutoTasks: i,
			Status:    domain.RunSucceeded,
		})
		require.NoError(t, repo.RecordRun(ctx, &record))
	}

	svc := NewRunService(repo)

	t.Run("list newest first", func(t *testing.T) {
		runs, err := svc.ListRuns(ctx, 2)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "third", runs[0].ID)
		assert.Equal(t, "second", runs[1].ID)
	})

	t.Run("list all", func(t *testing.T) {
		runs, err := svc.ListRuns(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, runs, 3)
	})

	t.Run("get", func(t *testing.T) {
		run, err := svc.GetRun(ctx, " second ")
		require.NoError(t, err)
		assert.Equal(t, 1, run.AutoTasks)
		assert.False(t, run.Failed())
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.GetRun(ctx, "nope")
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound), "unexpected error %v", err)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := svc.GetRun(ctx, "")
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})
}
