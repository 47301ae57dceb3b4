package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenith/internal/config"
	"zenith/internal/domain"
	apperrors "zenith/internal/errors"
	"zenith/internal/services"
)

// stubPlanner records the tasks it was given.
type stubPlanner struct {
	got      []domain.Task
	rejected error
	schedule domain.Schedule
	err      error
}

func (p *stubPlanner) Reject(_ context.Context, cause error) {
	p.rejected = cause
}

func (p *stubPlanner) Plan(_ context.Context, tasks []domain.Task) (domain.Schedule, error) {
	p.got = tasks
	return p.schedule, p.err
}

func TestAPI_GenerateDurations(t *testing.T) {
	task := domain.NewAutoTask("a", "Write", 7, 3)
	planner := &stubPlanner{schedule: domain.Schedule{
		Tasks: []domain.ScheduledTask{{Task: task, Start: domain.Clock(8, 0), End: domain.Clock(9, 0), Duration: 1}},
	}}
	a := New(&services.ServiceContainer{Planner: planner}, config.NewConfig())

	resp, err := a.GenerateDurations(context.Background(), []TaskRecord{
		{ID: "a", Title: "Write", Type: "1", Effort: "7", Enjoyability: "3"},
	})
	require.NoError(t, err)

	require.Len(t, planner.got, 1)
	assert.Equal(t, 7.0, planner.got[0].Effort)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, "09:00", resp.Tasks[0].EndTime)
}

func TestAPI_GenerateDurations_ParseErrorIsRejected(t *testing.T) {
	planner := &stubPlanner{}
	a := New(&services.ServiceContainer{Planner: planner}, nil)

	_, err := a.GenerateDurations(context.Background(), []TaskRecord{{ID: "a", Type: "x"}})

	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	assert.Nil(t, planner.got)
	assert.Equal(t, err, planner.rejected)
}

func TestAPI_GenerateDurations_PlannerError(t *testing.T) {
	boom := apperrors.NewSchedulingConflictError("m1", "m2")
	a := New(&services.ServiceContainer{Planner: &stubPlanner{err: boom}}, nil)

	_, err := a.GenerateDurations(context.Background(), []TaskRecord{})

	assert.True(t, errors.Is(err, boom))
}

func TestAPI_RunsDisabled(t *testing.T) {
	a := New(&services.ServiceContainer{Planner: &stubPlanner{}}, nil)

	_, err := a.ListRuns(context.Background(), 10)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))

	_, err = a.GetRun(context.Background(), "x")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
}
