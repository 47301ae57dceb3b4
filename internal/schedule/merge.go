package schedule

import (
	"fmt"
	"sort"

	"zenith/internal/domain"
)

// MergeOptions anchor the timeline.
type MergeOptions struct {
	DayStart domain.ClockTime
	// DayEnd only drives overrun warnings; tasks are never cut at it.
	// A DayEnd at or before DayStart disables the check.
	DayEnd domain.ClockTime
	// Breaks inserts BreakTime as idle time after each auto task.
	Breaks bool
}

// DefaultMergeOptions starts the day at 08:00, ends it at 22:00 and inserts breaks.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		DayStart: domain.Clock(8, 0),
		DayEnd:   domain.Clock(22, 0),
		Breaks:   true,
	}
}

// Merge threads auto tasks, with durations[i] hours for auto[i], into the
// gaps between manual tasks. Auto tasks keep their input order; one that does
// not fit before the next manual window waits for a later gap or the tail of
// the day. Manual windows are never moved. Conflicting manual windows must be
// rejected with DetectConflicts beforehand.
//
// The result is sorted by start time and holds every input task once. The
// returned warnings describe auto tasks that run past opts.DayEnd.
func Merge(auto []domain.Task, durations []float64, manual []domain.Task, opts MergeOptions) ([]domain.ScheduledTask, []string, error) {
	if len(auto) != len(durations) {
		return nil, nil, fmt.Errorf("merge: %d auto tasks but %d durations", len(auto), len(durations))
	}

	scheduled := make([]domain.ScheduledTask, 0, len(auto)+len(manual))
	var warnings []string
	clock := opts.DayStart
	next := 0

	place := func() {
		task, hours := auto[next], durations[next]
		st := domain.ScheduledTask{
			Task:     task,
			Start:    clock,
			End:      clock.Add(domain.HoursToDuration(hours)),
			Duration: hours,
		}
		if opts.Breaks && hours > 0 {
			st.Break = BreakTime(hours)
		}
		if opts.DayEnd > opts.DayStart && st.End > opts.DayEnd {
			st.Overrun = true
			warnings = append(warnings, fmt.Sprintf("task %s ends at %s, after the end of day at %s",
				task.String(), st.End, opts.DayEnd))
		}
		scheduled = append(scheduled, st)
		clock = st.End.Add(domain.HoursToDuration(st.Break))
		next++
	}

	for _, m := range SortManual(manual) {
		for next < len(auto) && clock.Add(domain.HoursToDuration(durations[next])) <= m.Start {
			place()
		}
		scheduled = append(scheduled, domain.ScheduledTask{Task: m, Start: m.Start, End: m.End})
		clock = m.End
		if clock < opts.DayStart {
			clock = opts.DayStart
		}
	}
	for next < len(auto) {
		place()
	}

	sort.SliceStable(scheduled, func(i, j int) bool {
		return scheduled[i].Start < scheduled[j].Start
	})
	return scheduled, warnings, nil
}
