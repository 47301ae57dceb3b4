package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"zenith/internal/config"
	"zenith/internal/domain"
	apperrors "zenith/internal/errors"
	"zenith/internal/logging"
	"zenith/internal/optimizer"
	"zenith/internal/productivity"
	"zenith/internal/repository/sqlite"
	"zenith/internal/schedule"
	"zenith/internal/validation"
)

// plannerServiceImpl implements the PlannerService interface
type plannerServiceImpl struct {
	optimizer     *optimizer.Optimizer
	merge         schedule.MergeOptions
	taskValidator *validation.TaskValidator
	repo          sqlite.Repository
	mapper        *domain.Mapper
	maxRuns       int
	logger        *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewPlannerService creates a PlannerService from cfg. A nil repo disables
// run auditing; a nil logger discards logs.
func NewPlannerService(cfg *config.Config, repo sqlite.Repository, logger *slog.Logger) (PlannerService, error) {
	dayStart, err := cfg.Schedule.DayStartClock()
	if err != nil {
		return nil, apperrors.NewInvalidInputError("schedule.day_start", cfg.Schedule.DayStart, err.Error())
	}
	dayEnd, err := cfg.Schedule.DayEndClock()
	if err != nil {
		return nil, apperrors.NewInvalidInputError("schedule.day_end", cfg.Schedule.DayEnd, err.Error())
	}
	if logger == nil {
		logger = logging.Discard()
	}

	solver := optimizer.NewProjectedGradient(cfg.Solver.MaxIterations, cfg.Solver.Tolerance, cfg.Solver.Timeout)

	return &plannerServiceImpl{
		optimizer: optimizer.New(cfg.Productivity.Model(), solver,
			cfg.Schedule.MaxDuration, cfg.Schedule.TotalAvailableTime),
		merge: schedule.MergeOptions{
			DayStart: dayStart,
			DayEnd:   dayEnd,
			Breaks:   cfg.Schedule.Breaks,
		},
		taskValidator: validation.NewTaskValidator(cfg),
		repo:          repo,
		mapper:        domain.NewMapper(),
		maxRuns:       cfg.Audit.MaxRuns,
		logger:        logger.With("component", "planner"),
		now:           time.Now,
		newID:         uuid.NewString,
	}, nil
}

// Plan implements PlannerService. Every call is audited, whether it
// succeeds or not.
func (p *plannerServiceImpl) Plan(ctx context.Context, tasks []domain.Task) (domain.Schedule, error) {
	run := p.newRun()
	logger := logging.FromContext(ctx, p.logger).With("run_id", run.ID)

	result, iterations, err := p.plan(ctx, logger, tasks, &run)
	run.Iterations = iterations
	run.Elapsed = p.now().Sub(run.CreatedAt)
	if err != nil {
		p.fail(logger, &run, err)
	} else {
		run.Status = domain.RunSucceeded
		run.UsedHours = result.UsedHours
		run.TotalProductivity = result.TotalProductivity
		logger.Info("schedule planned",
			"tasks", result.Len(),
			"used_hours", result.UsedHours,
			"productivity", result.TotalProductivity,
			"warnings", len(result.Warnings),
			"elapsed", run.Elapsed)
	}

	p.audit(ctx, logger, run)
	return result, err
}

// Reject implements PlannerService. The run is recorded as failed with no
// task counts.
func (p *plannerServiceImpl) Reject(ctx context.Context, cause error) {
	if cause == nil {
		return
	}
	run := p.newRun()
	logger := logging.FromContext(ctx, p.logger).With("run_id", run.ID)
	p.fail(logger, &run, cause)
	p.audit(ctx, logger, run)
}

func (p *plannerServiceImpl) newRun() domain.Run {
	return domain.Run{
		ID:                 p.newID(),
		CreatedAt:          p.now(),
		TotalAvailableTime: p.optimizer.TotalTime,
	}
}

func (p *plannerServiceImpl) fail(logger *slog.Logger, run *domain.Run, err error) {
	run.Status = domain.RunFailed
	run.ErrorCode = apperrors.GetErrorCode(err)
	if apperrors.ShouldLogError(err) {
		logger.Error("planning failed", "error", err)
	} else {
		logger.Debug("planning rejected", "code", run.ErrorCode, "error", err)
	}
}

func (p *plannerServiceImpl) plan(ctx context.Context, logger *slog.Logger, tasks []domain.Task, run *domain.Run) (domain.Schedule, int, error) {
	logger.Debug("received tasks", "count", len(tasks))

	if err := p.taskValidator.ValidateTasks(tasks); err != nil {
		if ve, ok := err.(*validation.ValidationError); ok {
			return domain.Schedule{}, 0, ve.AppError()
		}
		return domain.Schedule{}, 0, apperrors.NewValidationError("invalid tasks", err)
	}

	auto, manual := domain.SplitByKind(tasks)
	run.AutoTasks = len(auto)
	run.ManualTasks = len(manual)

	if err := schedule.DetectConflicts(manual); err != nil {
		return domain.Schedule{}, 0, err
	}

	inputs := make([]optimizer.Task, len(auto))
	for i, task := range auto {
		params, err := productivity.Normalize(task.Effort, task.Enjoyability)
		if err != nil {
			return domain.Schedule{}, 0, apperrors.NewInvalidInputError("task", task.ID, err.Error())
		}
		inputs[i] = optimizer.Task{ID: task.ID, Params: params}
	}

	alloc, err := p.optimizer.Allocate(ctx, inputs)
	if err != nil {
		return domain.Schedule{}, 0, err
	}
	for i, task := range auto {
		logger.Debug("allocated", "task", task.ID, "hours", alloc.Durations[i])
	}

	scheduled, warnings, err := schedule.Merge(auto, alloc.Durations, manual, p.merge)
	if err != nil {
		return domain.Schedule{}, alloc.Iterations, fmt.Errorf("failed to merge schedule: %w", err)
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	return domain.Schedule{
		Tasks:              scheduled,
		TotalProductivity:  alloc.TotalProductivity,
		UsedHours:          alloc.UsedHours,
		TotalAvailableTime: p.optimizer.TotalTime,
		Warnings:           warnings,
	}, alloc.Iterations, nil
}

// audit records run and prunes old ones. Audit failures are logged and never
// fail the plan.
func (p *plannerServiceImpl) audit(ctx context.Context, logger *slog.Logger, run domain.Run) {
	if p.repo == nil {
		return
	}
	// The plan may have failed because ctx expired; the record is still wanted.
	ctx = context.WithoutCancel(ctx)

	record := p.mapper.Run.ToDatabase(run)
	if err := p.repo.RecordRun(ctx, &record); err != nil {
		logger.Warn("failed to record run", "error", err)
		return
	}
	if p.maxRuns > 0 {
		removed, err := p.repo.PruneRuns(ctx, p.maxRuns)
		if err != nil {
			logger.Warn("failed to prune runs", "error", err)
			return
		}
		if removed > 0 {
			logger.Debug("pruned runs", "removed", removed)
		}
	}
}
