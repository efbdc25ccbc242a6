package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintErrorKeepsSentinelAndName(t *testing.T) {
	err := NewConstraintError(ErrDuplicateKey, "library_isbn_key")
	wrapped := fmt.Errorf("failed to add book: %w", err)

	assert.True(t, errors.Is(wrapped, ErrDuplicateKey))
	assert.False(t, errors.Is(wrapped, ErrForeignKeyViolation))
	assert.Equal(t, "library_isbn_key", ConstraintName(wrapped))
	assert.Equal(t, "duplicate key violation: library_isbn_key", err.Error())
}

func TestConstraintNameWithoutCustomError(t *testing.T) {
	assert.Empty(t, ConstraintName(errors.New("plain")))
	assert.Empty(t, ConstraintName(nil))
}

func TestCustomErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "not found names the resource",
			err:      NewResourceNotFoundError("student", 42),
			sentinel: ErrResourceNotFound,
			message:  "student 42 not found",
		},
		{
			name:     "validation prefixes the sentinel",
			err:      NewValidationError("credits must be positive"),
			sentinel: ErrValidationFailed,
			message:  "validation failed: credits must be positive",
		},
		{
			name:     "bad request keeps the message",
			err:      NewBadRequestError("as-of date is in the future"),
			sentinel: ErrBadRequest,
			message:  "as-of date is in the future",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestCustomErrorFallbacks(t *testing.T) {
	assert.Equal(t, "resource not found", (&CustomError{Err: ErrResourceNotFound}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}
