package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"DegenerateModel", ErrorTypeDegenerateModel, "degenerate_model"},
		{"OptimizationFailure", ErrorTypeOptimizationFailure, "optimization_failure"},
		{"SchedulingConflict", ErrorTypeSchedulingConflict, "scheduling_conflict"},
		{"Database", ErrorTypeDatabase, "database"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.errorType.String()
			if result != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "Error without cause",
			appError: &AppError{
				Type:    ErrorTypeSchedulingConflict,
				Message: "overlap",
			},
			expected: "scheduling_conflict: overlap",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeOptimizationFailure,
				Message: "no progress",
				Cause:   errors.New("iteration limit"),
			},
			expected: "optimization_failure: no progress (caused by: iteration limit)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appError := &AppError{
		Type:    ErrorTypeDatabase,
		Message: "wrapped error",
		Cause:   cause,
	}

	if appError.Unwrap() != cause {
		t.Errorf("AppError.Unwrap() = %v, want %v", appError.Unwrap(), cause)
	}
	if !errors.Is(appError, cause) {
		t.Errorf("errors.Is should find the cause through Unwrap")
	}
}

func TestAppError_Is(t *testing.T) {
	first := NewSchedulingConflictError("a", "b")
	second := NewSchedulingConflictError("c", "d")
	other := NewInvalidInputError("effort", 0, "must be positive")

	if !first.Is(second) {
		t.Errorf("errors with the same type and code should match")
	}
	if first.Is(other) {
		t.Errorf("errors with different types should not match")
	}
	if first.Is(errors.New("plain")) {
		t.Errorf("plain errors should not match")
	}
}

func TestAppError_Context(t *testing.T) {
	appError := &AppError{Type: ErrorTypeInvalidInput, Message: "test error"}

	result := appError.WithContext("field", "effort")
	if result != appError {
		t.Errorf("WithContext should return the same instance")
	}

	value, exists := appError.GetContext("field")
	if !exists || value != "effort" {
		t.Errorf("GetContext should return the stored value")
	}

	appError.Context = nil
	if _, exists := appError.GetContext("field"); exists {
		t.Errorf("GetContext should return false when context is nil")
	}
}

func TestErrorType_HTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		client    bool
		status    int
	}{
		{ErrorTypeValidation, true, http.StatusBadRequest},
		{ErrorTypeInvalidInput, true, http.StatusBadRequest},
		{ErrorTypeDegenerateModel, true, http.StatusBadRequest},
		{ErrorTypeOptimizationFailure, true, http.StatusBadRequest},
		{ErrorTypeSchedulingConflict, true, http.StatusBadRequest},
		{ErrorTypeNotFound, true, http.StatusNotFound},
		{ErrorTypeDatabase, false, http.StatusInternalServerError},
		{ErrorType(999), false, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.errorType.String(), func(t *testing.T) {
			if got := tt.errorType.IsClient(); got != tt.client {
				t.Errorf("ErrorType.IsClient() = %v, want %v", got, tt.client)
			}
			if got := tt.errorType.HTTPStatus(); got != tt.status {
				t.Errorf("ErrorType.HTTPStatus() = %v, want %v", got, tt.status)
			}
		})
	}
}
