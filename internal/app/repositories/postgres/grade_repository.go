package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
	"github.com/yigit/campusrecords/internal/pkg/logger"
)

var gradeColumns = []string{"student_id", "course_code", "semester", "grade"}

// GradeRepository handles the grades junction table
type GradeRepository struct {
	base
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(q db.Querier) *GradeRepository {
	return &GradeRepository{base: newBase(q)}
}

func scanGrade(row pgx.Row) (*models.Grade, error) {
	var g models.Grade
	if err := row.Scan(&g.StudentID, &g.CourseCode, &g.Semester, &g.Grade); err != nil {
		return nil, err
	}
	return &g, nil
}

func gradeKey(studentID int64, courseCode string) string {
	return fmt.Sprintf("(%d, %s)", studentID, courseCode)
}

// Create inserts a grade row
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	builder := r.sb.Insert("grades").
		Columns(gradeColumns...).
		Values(grade.StudentID, grade.CourseCode, grade.Semester, grade.Grade)
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create grade query: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return r.writeError(err, "create", "grade")
	}
	return nil
}

// Get retrieves one grade row
func (r *GradeRepository) Get(ctx context.Context, studentID int64, courseCode string) (*models.Grade, error) {
	builder := r.sb.Select(gradeColumns...).
		From("grades").
		Where(squirrel.Eq{"student_id": studentID, "course_code": courseCode})
	return getOne(ctx, r.base, builder, scanGrade, "grade", gradeKey(studentID, courseCode))
}

// GetByStudentID lists the grades of a student
func (r *GradeRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	builder := r.sb.Select(gradeColumns...).
		From("grades").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("course_code")
	return getMany(ctx, r.base, builder, scanGrade, "grades")
}

// GetByCourseCode lists the grades recorded for a course
func (r *GradeRepository) GetByCourseCode(ctx context.Context, courseCode string) ([]*models.Grade, error) {
	builder := r.sb.Select(gradeColumns...).
		From("grades").
		Where(squirrel.Eq{"course_code": courseCode}).
		OrderBy("student_id")
	return getMany(ctx, r.base, builder, scanGrade, "grades")
}

// Update rewrites semester and grade
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	builder := r.sb.Update("grades").
		Set("semester", grade.Semester).
		Set("grade", grade.Grade).
		Where(squirrel.Eq{"student_id": grade.StudentID, "course_code": grade.CourseCode})
	return r.exec(ctx, builder, "update", "grade", gradeKey(grade.StudentID, grade.CourseCode))
}

// Delete removes a grade row
func (r *GradeRepository) Delete(ctx context.Context, studentID int64, courseCode string) error {
	builder := r.sb.Delete("grades").
		Where(squirrel.Eq{"student_id": studentID, "course_code": courseCode})
	return r.exec(ctx, builder, "delete", "grade", gradeKey(studentID, courseCode))
}

// SumCredits totals course credits over the student's grade rows
func (r *GradeRepository) SumCredits(ctx context.Context, studentID int64) (int, error) {
	query, args, err := r.sb.Select("COALESCE(SUM(c.credits), 0)").
		From("grades g").
		Join("courses c ON c.course_code = g.course_code").
		Where(squirrel.Eq{"g.student_id": studentID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sum credits query: %w", err)
	}

	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error summing credits")
		return 0, fmt.Errorf("error summing credits: %w", err)
	}
	return total, nil
}
