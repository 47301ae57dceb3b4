package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"zenith/internal/domain"
	"zenith/internal/validation"
)

// ToDomainTasks parses client records into domain tasks. Field format
// problems across all records are reported together as one InvalidInput
// error. A nil slice means no task list was sent at all.
func ToDomainTasks(records []TaskRecord, tv *validation.TaskValidator) ([]domain.Task, error) {
	ve := validation.NewValidationError()
	if records == nil {
		ve.AddRequiredError("tasks")
		return nil, ve.AppError()
	}

	tasks := make([]domain.Task, 0, len(records))
	for i, r := range records {
		prefix := fmt.Sprintf("tasks[%d]", i)

		task := domain.Task{
			ID:          strings.TrimSpace(string(r.ID)),
			Title:       r.Title,
			Kind:        tv.ParseKindField(ve, prefix+".type", string(r.Type)),
			Description: r.Description,
			StartDate:   r.StartDate,
			EndDate:     r.EndDate,
			ColorCode:   r.ColorCode,
			Archived:    r.Archived,
		}
		switch task.Kind {
		case domain.KindAuto:
			task.Effort = tv.ParseRatingField(ve, prefix+".effort", string(r.Effort))
			task.Enjoyability = tv.ParseRatingField(ve, prefix+".enjoyability", string(r.Enjoyability))
		case domain.KindManual:
			task.Start = tv.ParseClockField(ve, prefix+".startTime", r.StartTime)
			task.End = tv.ParseClockField(ve, prefix+".endTime", r.EndTime)
		}
		tasks = append(tasks, task)
	}

	if ve.HasErrors() {
		return nil, ve.AppError()
	}
	return tasks, nil
}

// NewScheduleResponse renders a schedule. records supplies the effort and
// enjoyability text exactly as submitted; tasks without a matching record
// fall back to the parsed values.
func NewScheduleResponse(s domain.Schedule, records []TaskRecord) *ScheduleResponse {
	byID := make(map[string]TaskRecord, len(records))
	for _, r := range records {
		byID[strings.TrimSpace(string(r.ID))] = r
	}

	resp := &ScheduleResponse{
		Tasks:              make([]TaskResponse, 0, len(s.Tasks)),
		Warnings:           s.Warnings,
		TotalProductivity:  s.TotalProductivity,
		UsedTime:           s.UsedHours,
		TotalAvailableTime: s.TotalAvailableTime,
	}
	for _, st := range s.Tasks {
		resp.Tasks = append(resp.Tasks, newTaskResponse(st, byID))
	}
	return resp
}

func newTaskResponse(st domain.ScheduledTask, byID map[string]TaskRecord) TaskResponse {
	task := st.Task
	tr := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		StartDate:   task.StartDate,
		EndDate:     task.EndDate,
		StartTime:   st.Start.String(),
		EndTime:     st.End.String(),
		Type:        task.Kind.Code(),
		ColorCode:   task.ColorCode,
		Archived:    task.Archived,
		Overrun:     st.Overrun,
	}

	if r, ok := byID[task.ID]; ok {
		tr.Effort = string(r.Effort)
		tr.Enjoyability = string(r.Enjoyability)
	} else if task.IsAuto() {
		tr.Effort = formatNumber(task.Effort)
		tr.Enjoyability = formatNumber(task.Enjoyability)
	}

	if task.IsAuto() {
		duration, breakDuration := st.Duration, st.Break
		tr.Duration = &duration
		tr.BreakDuration = &breakDuration
	}
	return tr
}

// NewRunResponse renders an audited run.
func NewRunResponse(run domain.Run) RunResponse {
	return RunResponse{
		ID:                 run.ID,
		CreatedAt:          run.CreatedAt.UTC().Format(time.RFC3339),
		Status:             string(run.Status),
		ErrorCode:          run.ErrorCode,
		AutoTasks:          run.AutoTasks,
		ManualTasks:        run.ManualTasks,
		UsedTime:           run.UsedHours,
		TotalAvailableTime: run.TotalAvailableTime,
		TotalProductivity:  run.TotalProductivity,
		Iterations:         run.Iterations,
		ElapsedMS:          run.Elapsed.Milliseconds(),
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
