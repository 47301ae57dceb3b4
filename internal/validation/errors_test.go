package validation

import (
	"strings"
	"testing"

	apperrors "zenith/internal/errors"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "id", Message: "is required"}}, "validation error for field 'id': is required"},
		{"Multiple errors", []FieldError{
			{Field: "id", Message: "is required"},
			{Field: "effort", Message: "must be between 1 and 10"},
		}, "multiple validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if tt.name == "Multiple errors" {
				if !strings.Contains(result, tt.expectError) {
					t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expectError)
				}
			} else {
				if result != tt.expectError {
					t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
				}
			}
		})
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	ve := NewValidationError()
	if ve.HasErrors() {
		t.Error("new ValidationError should have no errors")
	}

	ve.AddRequiredError("tasks[0].id")
	if !ve.HasErrors() {
		t.Error("ValidationError should have errors after AddRequiredError")
	}
}

func TestValidationError_AddHelpers(t *testing.T) {
	tests := []struct {
		name         string
		add          func(*ValidationError)
		expectedType ValidationErrorType
		contains     string
	}{
		{"required", func(ve *ValidationError) { ve.AddRequiredError("tasks[0].id") }, ErrorTypeRequired, "tasks[0].id is required"},
		{"format", func(ve *ValidationError) { ve.AddInvalidFormatError("tasks[0].startTime", "9h", "HH:MM") }, ErrorTypeInvalidFormat, "expected: HH:MM"},
		{"value", func(ve *ValidationError) { ve.AddInvalidValueError("tasks[0].type", "3", "unknown") }, ErrorTypeInvalidValue, "invalid value: unknown"},
		{"range", func(ve *ValidationError) { ve.AddInvalidRangeError("tasks[0].effort", 11.0, "too big") }, ErrorTypeInvalidRange, "invalid range: too big"},
		{"duplicate", func(ve *ValidationError) { ve.AddDuplicateError("tasks[1].id", "a") }, ErrorTypeDuplicate, "duplicates an earlier value a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := NewValidationError()
			tt.add(ve)

			if len(ve.Errors) != 1 {
				t.Fatalf("expected 1 error, got %d", len(ve.Errors))
			}
			if ve.Errors[0].Type != tt.expectedType {
				t.Errorf("expected type %v, got %v", tt.expectedType, ve.Errors[0].Type)
			}
			if !strings.Contains(ve.Errors[0].Message, tt.contains) {
				t.Errorf("message %q does not contain %q", ve.Errors[0].Message, tt.contains)
			}
		})
	}
}

func TestValidationError_Merge(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("a")

	other := NewValidationError()
	other.AddRequiredError("b")
	other.AddRequiredError("c")

	ve.Merge(other)
	ve.Merge(nil)

	if len(ve.Errors) != 3 {
		t.Errorf("expected 3 errors after merge, got %d", len(ve.Errors))
	}
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("tasks[0].id")
	ve.AddInvalidRangeError("tasks[0].effort", 0.0, "too small")
	ve.AddInvalidValueError("tasks[0].effort", "x", "not a number")

	if got := len(ve.GetFieldErrors("tasks[0].effort")); got != 2 {
		t.Errorf("expected 2 errors for effort, got %d", got)
	}
	if got := len(ve.GetFieldErrors("tasks[1].effort")); got != 0 {
		t.Errorf("expected no errors for tasks[1].effort, got %d", got)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if msg := ve.GetUserFriendlyMessage(); msg != "Input validation failed" {
		t.Errorf("unexpected empty message %q", msg)
	}

	ve.AddRequiredError("tasks[0].id")
	if msg := ve.GetUserFriendlyMessage(); msg != "tasks[0].id is required" {
		t.Errorf("unexpected single message %q", msg)
	}

	ve.AddRequiredError("tasks[1].id")
	msg := ve.GetUserFriendlyMessage()
	if !strings.HasPrefix(msg, "Multiple validation errors occurred:") || !strings.Contains(msg, "- tasks[1].id is required") {
		t.Errorf("unexpected multi message %q", msg)
	}
}

func TestValidationError_AppError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("tasks[0].id")
	ve.AddInvalidFormatError("tasks[1].startTime", "noon", "HH:MM")

	appErr := ve.AppError()

	if appErr.Type != apperrors.ErrorTypeInvalidInput {
		t.Errorf("expected InvalidInput, got %v", appErr.Type)
	}
	if appErr.Code != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "tasks[0].id is required; tasks[1].startTime has invalid format") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	if !IsValidationError(appErr.Cause) {
		t.Error("cause should be the ValidationError")
	}
	if apperrors.HTTPStatus(appErr) != 400 {
		t.Errorf("expected status 400, got %d", apperrors.HTTPStatus(appErr))
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(NewValidationError()) {
		t.Error("expected ValidationError to be recognised")
	}
	if IsValidationError(apperrors.NewNotFoundError("run", "x")) {
		t.Error("AppError is not a ValidationError")
	}
}
