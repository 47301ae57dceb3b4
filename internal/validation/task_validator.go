package validation

import (
	"fmt"
	"strconv"
	"strings"

	"zenith/internal/config"
	"zenith/internal/domain"
)

// TaskValidator checks a batch of planning tasks before they reach the optimizer.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a task validator. A nil config uses the defaults.
func NewTaskValidator(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTasks validates every task in the batch and reports all problems
// at once. An empty batch is valid.
func (tv *TaskValidator) ValidateTasks(tasks []domain.Task) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidTaskCount(len(tasks)) {
		validationError.AddInvalidRangeError("tasks", len(tasks),
			fmt.Sprintf("at most %d tasks can be planned at once", tv.validator.Rules().MaxTasks))
		return validationError
	}

	seen := make(map[string]bool, len(tasks))
	for i, task := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if !tv.validator.IsNonEmptyString(task.ID) {
			validationError.AddRequiredError(prefix + ".id")
		} else if seen[task.ID] {
			validationError.AddDuplicateError(prefix+".id", task.ID)
		}
		seen[task.ID] = true

		validationError.Merge(tv.validateTask(prefix, task))
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

func (tv *TaskValidator) validateTask(prefix string, task domain.Task) *ValidationError {
	validationError := NewValidationError()

	switch task.Kind {
	case domain.KindAuto:
		tv.validateRating(validationError, prefix+".effort", task.Effort)
		tv.validateRating(validationError, prefix+".enjoyability", task.Enjoyability)
	case domain.KindManual:
		if !tv.validator.IsValidWindow(task.Start, task.End) {
			validationError.AddInvalidRangeError(prefix+".endTime", task.End.String(),
				fmt.Sprintf("must be after startTime %s", task.Start))
		}
	default:
		validationError.AddInvalidValueError(prefix+".type", int(task.Kind), "must be 1 (auto) or 2 (manual)")
	}

	return validationError
}

func (tv *TaskValidator) validateRating(ve *ValidationError, field string, value float64) {
	rules := tv.validator.Rules()
	if !tv.validator.IsFinite(value) {
		ve.AddInvalidValueError(field, value, "must be a finite number")
		return
	}
	if !tv.validator.IsValidRating(value) {
		ve.AddInvalidRangeError(field, value,
			fmt.Sprintf("must be between %g and %g", rules.MinRating, rules.MaxRating))
	}
}

// ParseClockField parses an "HH:MM" field, recording a format error on failure.
func (tv *TaskValidator) ParseClockField(ve *ValidationError, field, value string) domain.ClockTime {
	if !tv.validator.IsNonEmptyString(value) {
		ve.AddRequiredError(field)
		return 0
	}
	c, err := domain.ParseClock(value)
	if err != nil {
		ve.AddInvalidFormatError(field, value, "HH:MM")
		return 0
	}
	return c
}

// ParseKindField parses a task type code, recording an error on failure.
func (tv *TaskValidator) ParseKindField(ve *ValidationError, field, value string) domain.TaskKind {
	if !tv.validator.IsNonEmptyString(value) {
		ve.AddRequiredError(field)
		return 0
	}
	kind, err := domain.ParseTaskKind(value)
	if err != nil {
		ve.AddInvalidValueError(field, value, "must be 1 (auto) or 2 (manual)")
		return 0
	}
	return kind
}

// ParseRatingField parses a numeric rating given as text, recording an
// error when it is missing or not a number. Range checks happen in
// ValidateTasks.
func (tv *TaskValidator) ParseRatingField(ve *ValidationError, field, value string) float64 {
	if !tv.validator.IsNonEmptyString(value) {
		ve.AddRequiredError(field)
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || !tv.validator.IsFinite(f) {
		ve.AddInvalidValueError(field, value, "must be a number")
		return 0
	}
	return f
}
