package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/db"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/dberrors"
	"github.com/yigit/campusrecords/internal/pkg/logger"
)

// Store runs repositories over a pgx pool, one transaction per WithTransaction call.
type Store struct {
	db *db.PostgresDB
}

// NewStore wraps an open PostgresDB
func NewStore(database *db.PostgresDB) *Store {
	return &Store{db: database}
}

// WithTransaction implements repositories.Store
func (s *Store) WithTransaction(ctx context.Context, fn repositories.TxFn) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
}

// Close closes the underlying pool
func (s *Store) Close() {
	s.db.Close()
}

// NewRepositories binds every repository to q, which is usually a pgx.Tx.
func NewRepositories(q db.Querier) *repositories.Repositories {
	return &repositories.Repositories{
		Departments:        NewDepartmentRepository(q),
		Professors:         NewProfessorRepository(q),
		Students:           NewStudentRepository(q),
		Addresses:          NewAddressRepository(q),
		EmergencyContacts:  NewEmergencyContactRepository(q),
		Courses:            NewCourseRepository(q),
		TeachingAssistants: NewTeachingAssistantRepository(q),
		Grades:             NewGradeRepository(q),
		Attendance:         NewAttendanceRepository(q),
		Fees:               NewFeeRepository(q),
		Books:              NewBookRepository(q),
		BookIssues:         NewBookIssueRepository(q),
		UserAccounts:       NewUserAccountRepository(q),
		Notifications:      NewNotificationRepository(q),
		Feedback:           NewFeedbackRepository(q),
		Reports:            NewReportRepository(q),
	}
}

// base carries the querier and the dollar-placeholder statement builder
type base struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

func newBase(q db.Querier) base {
	return base{
		q:  q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// insertReturning runs an INSERT ... RETURNING <key> and scans the generated key into dest.
func (b base) insertReturning(ctx context.Context, builder squirrel.InsertBuilder, resource string, dest interface{}) error {
	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("resource", resource).Msg("Error building insert SQL")
		return fmt.Errorf("failed to build create %s query: %w", resource, err)
	}

	if err := b.q.QueryRow(ctx, query, args...).Scan(dest); err != nil {
		return b.writeError(err, "create", resource)
	}
	return nil
}

// exec runs a write and reports a not-found error when it touched no row.
func (b base) exec(ctx context.Context, builder squirrel.Sqlizer, action, resource string, key interface{}) error {
	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("resource", resource).Msgf("Error building %s SQL", action)
		return fmt.Errorf("failed to build %s %s query: %w", action, resource, err)
	}

	tag, err := b.q.Exec(ctx, query, args...)
	if err != nil {
		return b.writeError(err, action, resource)
	}

	if tag.RowsAffected() == 0 {
		logger.Warn().Str("resource", resource).Interface("key", key).Msgf("No row to %s", action)
		return apperrors.NewResourceNotFoundError(resource, key)
	}
	return nil
}

// writeError translates integrity violations and wraps everything else.
func (b base) writeError(err error, action, resource string) error {
	if dberrors.IsIntegrityViolation(err) {
		translated := dberrors.Translate(err)
		logger.Warn().Err(translated).Str("resource", resource).Msgf("Constraint violation on %s", action)
		return translated
	}
	logger.Error().Err(err).Str("resource", resource).Msgf("Error executing %s query", action)
	return fmt.Errorf("error executing %s %s: %w", action, resource, err)
}

// scanFn scans one row; pgx.Rows satisfies pgx.Row so the same function serves lists.
type scanFn[T any] func(row pgx.Row) (*T, error)

// getOne runs a single-row SELECT
func getOne[T any](ctx context.Context, b base, builder squirrel.Sqlizer, scan scanFn[T], resource string, key interface{}) (*T, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("resource", resource).Msg("Error building select SQL")
		return nil, fmt.Errorf("failed to build get %s query: %w", resource, err)
	}

	item, err := scan(b.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Debug().Str("resource", resource).Interface("key", key).Msg("Row not found")
			return nil, apperrors.NewResourceNotFoundError(resource, key)
		}
		logger.Error().Err(err).Str("resource", resource).Msg("Error scanning row")
		return nil, fmt.Errorf("error retrieving %s: %w", resource, err)
	}
	return item, nil
}

// getMany runs a multi-row SELECT
func getMany[T any](ctx context.Context, b base, builder squirrel.Sqlizer, scan scanFn[T], resource string) ([]*T, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("resource", resource).Msg("Error building list SQL")
		return nil, fmt.Errorf("failed to build list %s query: %w", resource, err)
	}

	rows, err := b.q.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("resource", resource).Msg("Error executing list query")
		return nil, fmt.Errorf("error listing %s: %w", resource, err)
	}
	defer rows.Close()

	items := []*T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", resource, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", resource, err)
	}
	return items, nil
}
