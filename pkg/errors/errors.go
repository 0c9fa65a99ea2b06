package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodePersistence   ErrorCode = "PERSISTENCE_FAILURE"
	ErrCodeNotification  ErrorCode = "NOTIFICATION_FAILURE"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Code returns the code of the first AppError in err's chain, or "" if there is none.
func Code(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsNotFound checks if error is NotFound
func IsNotFound(err error) bool {
	return Code(err) == ErrCodeNotFound
}

// IsConflict checks if error is Conflict
func IsConflict(err error) bool {
	return Code(err) == ErrCodeConflict
}

// IsValidation checks if error is a validation failure
func IsValidation(err error) bool {
	return Code(err) == ErrCodeValidation
}

// IsPersistence checks if error means the write or read did not reach the backend
func IsPersistence(err error) bool {
	return Code(err) == ErrCodePersistence
}
