package apperrors

import (
	"errors"
	"fmt"
)

// Resource errors
var (
	ErrResourceNotFound = errors.New("resource not found")
)

// Constraint errors raised by the store
var (
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrCheckViolation      = errors.New("check constraint violation")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Library errors
var (
	ErrBookAlreadyIssued = errors.New("Book is already issued to this student.")
	ErrAlreadyReturned   = errors.New("book issue has already been returned")
)

// Account errors
var (
	ErrInvalidAccountLink = errors.New("account must reference exactly one of student or professor")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err        error
	Message    string
	Constraint string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewResourceNotFoundError creates a not-found error naming the missing resource
func NewResourceNotFoundError(resource string, key interface{}) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, key),
	}
}

// NewConstraintError wraps one of the constraint sentinels with the violated constraint name.
func NewConstraintError(kind error, constraint string) error {
	return &CustomError{
		Err:        kind,
		Message:    fmt.Sprintf("%s: %s", kind.Error(), constraint),
		Constraint: constraint,
	}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), message),
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// ConstraintName returns the constraint carried by err, if any.
func ConstraintName(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}
