// Package api exposes planning to clients: a facade shared by the CLI and
// the HTTP server, the wire types both speak, and the HTTP handlers.
package api

import (
	"context"

	"zenith/internal/config"
	apperrors "zenith/internal/errors"
	"zenith/internal/services"
	"zenith/internal/validation"
)

// API defines the operations available to clients.
type API interface {
	// GenerateDurations plans one day from client task records.
	GenerateDurations(ctx context.Context, records []TaskRecord) (*ScheduleResponse, error)

	// Run log operations
	ListRuns(ctx context.Context, limit int) ([]RunResponse, error)
	GetRun(ctx context.Context, id string) (*RunResponse, error)
}

type apiImpl struct {
	planner       services.PlannerService
	runs          services.RunService
	taskValidator *validation.TaskValidator
}

// New creates a new API instance. container.Runs may be nil when the run
// log is disabled.
func New(container *services.ServiceContainer, cfg *config.Config) API {
	return &apiImpl{
		planner:       container.Planner,
		runs:          container.Runs,
		taskValidator: validation.NewTaskValidator(cfg),
	}
}

func (a *apiImpl) GenerateDurations(ctx context.Context, records []TaskRecord) (*ScheduleResponse, error) {
	tasks, err := ToDomainTasks(records, a.taskValidator)
	if err != nil {
		a.planner.Reject(ctx, err)
		return nil, err
	}

	schedule, err := a.planner.Plan(ctx, tasks)
	if err != nil {
		return nil, err
	}
	return NewScheduleResponse(schedule, records), nil
}

func (a *apiImpl) ListRuns(ctx context.Context, limit int) ([]RunResponse, error) {
	if a.runs == nil {
		return nil, errRunLogDisabled()
	}
	runs, err := a.runs.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, NewRunResponse(run))
	}
	return out, nil
}

func (a *apiImpl) GetRun(ctx context.Context, id string) (*RunResponse, error) {
	if a.runs == nil {
		return nil, errRunLogDisabled()
	}
	run, err := a.runs.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := NewRunResponse(*run)
	return &resp, nil
}

func errRunLogDisabled() error {
	return apperrors.NewValidationError("the run log is disabled", nil)
}
