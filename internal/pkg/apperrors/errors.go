package apperrors

import (
	"errors"
	"fmt"
)

// Base error kinds. Every failure produced by the workflow core wraps one of
// these so the HTTP layer can map it to a response with errors.Is.
var (
	// ErrInvalidInput marks malformed or out-of-enum request values.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPreconditionFailed marks a business-rule gate that was not met.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrNotFound marks a missing student/group/instructor/report reference.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict marks an assumption invalidated by a concurrent mutation.
	ErrConflict = errors.New("conflict")
	// ErrStorageFailure marks a transaction that could not commit.
	ErrStorageFailure = errors.New("storage failure")
)

// Authentication errors used by the outer request layer.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNPMAlreadyExists   = errors.New("npm already exists")
)

// CustomError carries a human-readable reason on top of a base error kind.
// The message names the specific member or field at fault so rejections are
// actionable, not generic.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError creates an invalid-input error with a reason
func NewInvalidInputError(format string, args ...interface{}) error {
	return &CustomError{Err: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NewPreconditionError creates a precondition-failed error with a reason
func NewPreconditionError(format string, args ...interface{}) error {
	return &CustomError{Err: ErrPreconditionFailed, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a not-found error with a reason
func NewNotFoundError(format string, args ...interface{}) error {
	return &CustomError{Err: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError creates a conflict error with a reason
func NewConflictError(format string, args ...interface{}) error {
	return &CustomError{Err: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// NewForbiddenError creates a permission-denied error with a reason
func NewForbiddenError(format string, args ...interface{}) error {
	return &CustomError{Err: ErrPermissionDenied, Message: fmt.Sprintf(format, args...)}
}
