package domain

import (
	"fmt"
	"strings"
)

// TaskKind says whether a task's window is computed or fixed.
type TaskKind int

const (
	// KindAuto tasks get a duration from the optimizer and a slot from the merger.
	KindAuto TaskKind = 1
	// KindManual tasks keep the window they were submitted with.
	KindManual TaskKind = 2
)

// ParseTaskKind accepts the wire codes "1" and "2" as well as "auto" and "manual".
func ParseTaskKind(s string) (TaskKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "auto":
		return KindAuto, nil
	case "2", "manual":
		return KindManual, nil
	default:
		return 0, fmt.Errorf("unknown task type %q", s)
	}
}

// Code returns the wire code of the kind.
func (k TaskKind) Code() string {
	return fmt.Sprintf("%d", int(k))
}

func (k TaskKind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Task represents a task in the domain model.
// Description, dates, color and the archived flag are carried through to the
// schedule unchanged; planning never reads them.
type Task struct {
	ID           string
	Title        string
	Kind         TaskKind
	Effort       float64
	Enjoyability float64

	// Start and End are only meaningful for manual tasks.
	Start ClockTime
	End   ClockTime

	Description string
	StartDate   string
	EndDate     string
	ColorCode   string
	Archived    bool
}

// NewAutoTask creates a task whose duration is left to the optimizer.
func NewAutoTask(id, title string, effort, enjoyability float64) Task {
	return Task{
		ID:           id,
		Title:        title,
		Kind:         KindAuto,
		Effort:       effort,
		Enjoyability: enjoyability,
	}
}

// NewManualTask creates a task pinned to [start, end).
func NewManualTask(id, title string, start, end ClockTime) Task {
	return Task{
		ID:    id,
		Title: title,
		Kind:  KindManual,
		Start: start,
		End:   end,
	}
}

// IsAuto reports whether the task is scheduled by the optimizer.
func (t Task) IsAuto() bool {
	return t.Kind == KindAuto
}

// IsManual reports whether the task has a fixed window.
func (t Task) IsManual() bool {
	return t.Kind == KindManual
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	switch t.Kind {
	case KindAuto:
		return true
	case KindManual:
		return t.End > t.Start
	default:
		return false
	}
}

// Overlaps reports whether two manual windows share any time. Touching
// endpoints do not overlap.
func (t Task) Overlaps(other Task) bool {
	return t.Start < other.End && other.Start < t.End
}

// String returns the task title, or its id when the title is empty.
func (t Task) String() string {
	if t.Title == "" {
		return t.ID
	}
	return t.Title
}

// SplitByKind partitions tasks into auto and manual, preserving input order.
func SplitByKind(tasks []Task) (auto, manual []Task) {
	for _, task := range tasks {
		if task.IsManual() {
			manual = append(manual, task)
		} else {
			auto = append(auto, task)
		}
	}
	return auto, manual
}
