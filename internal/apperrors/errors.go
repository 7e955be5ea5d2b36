package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrScheduleNotConfigured indicates that no active fee setting exists for the
// requested (level, academicYear, term) triple. Payment recording is blocked until
// an administrator configures the schedule, so callers must be able to tell this
// apart from a generic validation failure.
var ErrScheduleNotConfigured = errors.New("fee schedule not configured")

// ErrConflict indicates a concurrent same-key write could not be serialized.
// Callers should retry.
var ErrConflict = errors.New("concurrency conflict")

// AppError wraps a lower-level error with an HTTP-ish code and message for the
// handler layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
