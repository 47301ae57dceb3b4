package services

import (
	"context"
	"strings"

	"zenith/internal/domain"
	apperrors "zenith/internal/errors"
	"zenith/internal/repository/sqlite"
)

// runServiceImpl implements the RunService interface
type runServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

// NewRunService creates a new RunService instance
func NewRunService(repo sqlite.Repository) RunService {
	return &runServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
	}
}

// ListRuns retrieves recent runs
func (r *runServiceImpl) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	records, err := r.repo.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	return r.mapper.Run.FromDatabaseSlice(records), nil
}

// GetRun retrieves a run by its id
func (r *runServiceImpl) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NewInvalidInputError("id", id, "run id is required")
	}

	record, err := r.repo.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}

	run := r.mapper.Run.FromDatabase(*record)
	return &run, nil
}
