package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
)

// PostgreSQL SQLSTATE codes for integrity violations
const (
	CodeNotNullViolation    = "23502"
	CodeForeignKeyViolation = "23503"
	CodeUniqueViolation     = "23505"
	CodeCheckViolation      = "23514"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsIntegrityViolation reports whether err is a PostgreSQL integrity constraint violation
// that Translate maps onto an apperrors sentinel.
func IsIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case CodeUniqueViolation, CodeForeignKeyViolation, CodeCheckViolation, CodeNotNullViolation:
		return true
	default:
		return false
	}
}

// Translate maps integrity violations onto the apperrors sentinels.
// Errors that are not a *pgconn.PgError, or carry another code, are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	constraint := pgErr.ConstraintName
	if constraint == "" {
		constraint = pgErr.ColumnName
	}

	switch pgErr.Code {
	case CodeUniqueViolation:
		return apperrors.NewConstraintError(apperrors.ErrDuplicateKey, constraint)
	case CodeForeignKeyViolation:
		return apperrors.NewConstraintError(apperrors.ErrForeignKeyViolation, constraint)
	case CodeCheckViolation, CodeNotNullViolation:
		return apperrors.NewConstraintError(apperrors.ErrCheckViolation, constraint)
	default:
		return err
	}
}
