// Package schedule turns optimized durations and fixed manual windows into
// one ordered, non-overlapping timeline for the day.
package schedule

import "math"

// Break bounds in hours.
const (
	MinBreak = 5.0 / 60.0
	MaxBreak = 15.0 / 60.0

	breakFraction = 0.1
)

// BreakTime returns the rest owed after working d hours: a tenth of d,
// clamped to [5, 15] minutes and expressed in hours.
func BreakTime(d float64) float64 {
	return math.Max(MinBreak, math.Min(MaxBreak, breakFraction*d))
}
