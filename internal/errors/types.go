package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeInvalidInput
	ErrorTypeDegenerateModel
	ErrorTypeOptimizationFailure
	ErrorTypeSchedulingConflict
	ErrorTypeDatabase
	ErrorTypeNotFound
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeInvalidInput:
		return "invalid_input"
	case ErrorTypeDegenerateModel:
		return "degenerate_model"
	case ErrorTypeOptimizationFailure:
		return "optimization_failure"
	case ErrorTypeSchedulingConflict:
		return "scheduling_conflict"
	case ErrorTypeDatabase:
		return "database"
	case ErrorTypeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// IsClient reports whether errors of this type are caused by the request:
// the caller can fix them by changing the input.
func (et ErrorType) IsClient() bool {
	switch et {
	case ErrorTypeValidation, ErrorTypeInvalidInput, ErrorTypeDegenerateModel,
		ErrorTypeOptimizationFailure, ErrorTypeSchedulingConflict, ErrorTypeNotFound:
		return true
	default:
		return false
	}
}

// HTTPStatus returns the status code a response for this type carries.
func (et ErrorType) HTTPStatus() int {
	switch {
	case et == ErrorTypeNotFound:
		return http.StatusNotFound
	case et.IsClient():
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same type and code
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}
