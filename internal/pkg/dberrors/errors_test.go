package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		sentinel   error
		constraint string
	}{
		{
			name:       "unique violation",
			err:        &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "students_email_key"},
			sentinel:   apperrors.ErrDuplicateKey,
			constraint: "students_email_key",
		},
		{
			name:       "foreign key violation",
			err:        &pgconn.PgError{Code: CodeForeignKeyViolation, ConstraintName: "grades_course_code_fkey"},
			sentinel:   apperrors.ErrForeignKeyViolation,
			constraint: "grades_course_code_fkey",
		},
		{
			name:       "check violation",
			err:        &pgconn.PgError{Code: CodeCheckViolation, ConstraintName: "fees_amount_check"},
			sentinel:   apperrors.ErrCheckViolation,
			constraint: "fees_amount_check",
		},
		{
			name:       "not null falls back to the column",
			err:        fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeNotNullViolation, ColumnName: "email"}),
			sentinel:   apperrors.ErrCheckViolation,
			constraint: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsIntegrityViolation(tt.err))

			got := Translate(tt.err)
			assert.ErrorIs(t, got, tt.sentinel)
			assert.Equal(t, tt.constraint, apperrors.ConstraintName(got))
		})
	}
}

func TestTranslatePassesOtherErrorsThrough(t *testing.T) {
	assert.NoError(t, Translate(nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, Translate(plain))
	assert.False(t, IsIntegrityViolation(plain))

	syntax := &pgconn.PgError{Code: "42601"}
	assert.Equal(t, error(syntax), Translate(syntax))
	assert.False(t, IsIntegrityViolation(syntax))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("create: %w", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "book_issue_open_issue_idx"})

	assert.True(t, IsDuplicateConstraintError(err, "book_issue_open_issue_idx"))
	assert.False(t, IsDuplicateConstraintError(err, "library_isbn_key"))
	assert.False(t, IsDuplicateConstraintError(
		&pgconn.PgError{Code: CodeCheckViolation, ConstraintName: "book_issue_open_issue_idx"},
		"book_issue_open_issue_idx"))
}
