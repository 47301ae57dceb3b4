package domain

import "time"

// RunStatus is the outcome of one planning request.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run is the audit record of a planning request. It holds counts and totals
// only; the scheduled tasks themselves are never kept.
type Run struct {
	ID                 string
	CreatedAt          time.Time
	AutoTasks          int
	ManualTasks        int
	TotalAvailableTime float64
	UsedHours          float64
	TotalProductivity  float64
	Iterations         int
	Status             RunStatus
	ErrorCode          string
	Elapsed            time.Duration
}

// IsValid checks if the run has valid data.
func (r Run) IsValid() bool {
	if r.ID == "" || r.CreatedAt.IsZero() {
		return false
	}
	if r.Status != RunSucceeded && r.Status != RunFailed {
		return false
	}
	return r.AutoTasks >= 0 && r.ManualTasks >= 0
}

// Failed reports whether the run ended in an error.
func (r Run) Failed() bool {
	return r.Status == RunFailed
}
