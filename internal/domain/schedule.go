package domain

import "time"

// ScheduledTask is a task placed on the day's timeline.
type ScheduledTask struct {
	Task  Task
	Start ClockTime
	End   ClockTime

	// Duration and Break are working time and the idle gap that follows it,
	// in hours. Both are zero for manual tasks.
	Duration float64
	Break    float64

	// Overrun is set when an auto task ends after the configured end of day.
	Overrun bool
}

// Length returns End - Start.
func (s ScheduledTask) Length() time.Duration {
	return s.End.Sub(s.Start)
}

// Schedule is the result of planning one day.
type Schedule struct {
	Tasks              []ScheduledTask
	TotalProductivity  float64
	UsedHours          float64
	TotalAvailableTime float64
	Warnings           []string
}

// Len returns the number of scheduled tasks.
func (s Schedule) Len() int {
	return len(s.Tasks)
}
