package cli

import (
	"errors"
	"fmt"

	apperrors "zenith/internal/errors"
	"zenith/internal/validation"
)

// ErrorHandler turns service errors into messages fit for a terminal.
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user-facing message with the failed operation.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("failed to %s: %s", operation, ve.GetUserFriendlyMessage())
	}

	if _, ok := apperrors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, apperrors.GetUserMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsValidationError reports whether err was caused by bad input.
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return apperrors.IsErrorType(err, apperrors.ErrorTypeValidation) ||
		apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return apperrors.GetErrorCode(err)
}
