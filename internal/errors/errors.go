package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewDegenerateModelError reports a task whose decay-rate denominator is zero.
func NewDegenerateModelError(taskID string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDegenerateModel,
		Message: fmt.Sprintf("productivity model is degenerate for task %s", taskID),
		Code:    "DEGENERATE_MODEL",
		Cause:   cause,
		Context: map[string]interface{}{
			"task_id": taskID,
		},
	}
}

// NewOptimizationFailureError carries the solver's diagnostic message.
func NewOptimizationFailureError(diagnostic string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeOptimizationFailure,
		Message: fmt.Sprintf("optimization failed: %s", diagnostic),
		Code:    "OPTIMIZATION_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"diagnostic": diagnostic,
		},
	}
}

// NewSchedulingConflictError reports two manual tasks whose windows overlap.
func NewSchedulingConflictError(firstID, secondID string) *AppError {
	return &AppError{
		Type:    ErrorTypeSchedulingConflict,
		Message: fmt.Sprintf("manual tasks %s and %s have overlapping windows", firstID, secondID),
		Code:    "SCHEDULING_CONFLICT",
		Context: map[string]interface{}{
			"first":  firstID,
			"second": secondID,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(entityType string, id string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", entityType, id),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"entity_type": entityType,
			"id":          id,
		},
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsClientError reports whether the error is caused by the request rather than the system.
func IsClientError(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type.IsClient()
}

// HTTPStatus maps an error to the status code surfaced to HTTP clients.
// Errors outside the taxonomy are server errors.
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation:
			if appErr.Cause != nil {
				return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		case ErrorTypeInvalidInput, ErrorTypeDegenerateModel,
			ErrorTypeOptimizationFailure, ErrorTypeSchedulingConflict, ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if IsClientError(err) {
		return false
	}
	return true
}
