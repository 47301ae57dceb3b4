package schedule

import (
	"sort"

	"zenith/internal/domain"
	apperrors "zenith/internal/errors"
)

// SortManual returns the manual tasks ordered by start time. Ties keep input order.
func SortManual(manual []domain.Task) []domain.Task {
	sorted := make([]domain.Task, len(manual))
	copy(sorted, manual)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return sorted
}

// DetectConflicts fails with a SchedulingConflict naming the first pair of
// manual tasks whose windows overlap. Windows that only touch are fine.
func DetectConflicts(manual []domain.Task) error {
	sorted := SortManual(manual)
	var latest domain.Task
	for i, task := range sorted {
		// Only the window reaching furthest so far can overlap a later start.
		if i > 0 && latest.Overlaps(task) {
			return apperrors.NewSchedulingConflictError(latest.ID, task.ID)
		}
		if i == 0 || task.End > latest.End {
			latest = task
		}
	}
	return nil
}
