package sqlite

import "time"

// RunRecord is one row of the runs table.
type RunRecord struct {
	Seq                int64
	ID                 string
	CreatedAt          time.Time
	AutoTasks          int
	ManualTasks        int
	TotalAvailableTime float64
	UsedHours          float64
	TotalProductivity  float64
	Iterations         int
	Status             string
	ErrorCode          *string // NULL for successful runs
	ElapsedMS          int64
}
