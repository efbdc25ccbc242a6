package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
)

// AttendanceRepository handles attendance rows
type AttendanceRepository struct {
	base
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(q db.Querier) *AttendanceRepository {
	return &AttendanceRepository{base: newBase(q)}
}

// Create records one attendance entry
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	query, args, err := r.sb.Insert("attendance").
		Columns("student_id", "course_code", "date", "status").
		Values(attendance.StudentID, attendance.CourseCode, attendance.Date, attendance.Status).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create attendance query: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return r.writeError(err, "create", "attendance")
	}
	return nil
}

// GetByStudentID lists attendance of a student, oldest first
func (r *AttendanceRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Attendance, error) {
	builder := r.sb.Select("student_id", "course_code", "date", "status").
		From("attendance").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("date", "course_code")
	return getMany(ctx, r.base, builder, func(row pgx.Row) (*models.Attendance, error) {
		var a models.Attendance
		if err := row.Scan(&a.StudentID, &a.CourseCode, &a.Date, &a.Status); err != nil {
			return nil, err
		}
		return &a, nil
	}, "attendance")
}

// Delete removes one attendance entry
func (r *AttendanceRepository) Delete(ctx context.Context, studentID int64, courseCode string, date time.Time) error {
	builder := r.sb.Delete("attendance").
		Where(squirrel.Eq{"student_id": studentID, "course_code": courseCode, "date": date})
	key := fmt.Sprintf("(%d, %s, %s)", studentID, courseCode, date.Format(time.DateOnly))
	return r.exec(ctx, builder, "delete", "attendance", key)
}
