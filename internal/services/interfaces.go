package services

import (
	"context"

	"zenith/internal/domain"
)

// PlannerService turns a batch of tasks into a timed schedule for one day.
type PlannerService interface {
	// Plan validates tasks, allocates durations to the auto tasks, and
	// threads them around the manual windows.
	Plan(ctx context.Context, tasks []domain.Task) (domain.Schedule, error)

	// Reject records a request refused before it reached Plan, such as
	// task records that failed to parse.
	Reject(ctx context.Context, cause error)
}

// RunService reads the audit log of past planning runs.
type RunService interface {
	// ListRuns returns up to limit runs, newest first. A limit of zero or
	// less returns every run.
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)
	GetRun(ctx context.Context, id string) (*domain.Run, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Planner PlannerService
	Runs    RunService
}
