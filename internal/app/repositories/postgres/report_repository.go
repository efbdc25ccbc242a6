package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
)

// ReportRepository reads the reporting views
type ReportRepository struct {
	base
}

// NewReportRepository creates a new report repository
func NewReportRepository(q db.Querier) *ReportRepository {
	return &ReportRepository{base: newBase(q)}
}

var studentProfileColumns = []string{
	"student_id", "first_name", "last_name", "email", "department_name",
	"street", "city", "state", "postal_code", "country", "total_credits",
}

func scanStudentProfile(row pgx.Row) (*models.StudentProfile, error) {
	var p models.StudentProfile
	err := row.Scan(&p.StudentID, &p.FirstName, &p.LastName, &p.Email, &p.DepartmentName,
		&p.Street, &p.City, &p.State, &p.PostalCode, &p.Country, &p.TotalCredits)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// StudentProfiles reads student_profile
func (r *ReportRepository) StudentProfiles(ctx context.Context) ([]*models.StudentProfile, error) {
	builder := r.sb.Select(studentProfileColumns...).
		From("student_profile").
		OrderBy("student_id")
	return getMany(ctx, r.base, builder, scanStudentProfile, "student profiles")
}

// StudentProfile reads one row of student_profile
func (r *ReportRepository) StudentProfile(ctx context.Context, studentID int64) (*models.StudentProfile, error) {
	builder := r.sb.Select(studentProfileColumns...).
		From("student_profile").
		Where(squirrel.Eq{"student_id": studentID})
	return getOne(ctx, r.base, builder, scanStudentProfile, "student", studentID)
}

// CourseEnrollment reads course_enrollment
func (r *ReportRepository) CourseEnrollment(ctx context.Context) ([]*models.CourseEnrollment, error) {
	builder := r.sb.Select("course_code", "course_name", "professor_name", "student_id", "student_name", "semester", "grade").
		From("course_enrollment").
		OrderBy("course_code", "student_id")
	return getMany(ctx, r.base, builder, func(row pgx.Row) (*models.CourseEnrollment, error) {
		var e models.CourseEnrollment
		err := row.Scan(&e.CourseCode, &e.CourseName, &e.ProfessorName, &e.StudentID, &e.StudentName, &e.Semester, &e.Grade)
		if err != nil {
			return nil, err
		}
		return &e, nil
	}, "course enrollment")
}

// AttendanceReport reads attendance_report
func (r *ReportRepository) AttendanceReport(ctx context.Context) ([]*models.AttendanceReport, error) {
	builder := r.sb.Select("student_id", "student_name", "course_code", "course_name",
		"total_sessions", "present_count", "attendance_percentage").
		From("attendance_report").
		OrderBy("student_id", "course_code")
	return getMany(ctx, r.base, builder, func(row pgx.Row) (*models.AttendanceReport, error) {
		var a models.AttendanceReport
		err := row.Scan(&a.StudentID, &a.StudentName, &a.CourseCode, &a.CourseName,
			&a.TotalSessions, &a.PresentCount, &a.AttendancePercentage)
		if err != nil {
			return nil, err
		}
		return &a, nil
	}, "attendance report")
}

// ProfessorCourses reads professor_courses
func (r *ReportRepository) ProfessorCourses(ctx context.Context) ([]*models.ProfessorCourse, error) {
	builder := r.sb.Select("professor_id", "professor_name", "department_name", "course_code", "course_name", "credits").
		From("professor_courses").
		OrderBy("professor_id", "course_code")
	return getMany(ctx, r.base, builder, func(row pgx.Row) (*models.ProfessorCourse, error) {
		var p models.ProfessorCourse
		err := row.Scan(&p.ProfessorID, &p.ProfessorName, &p.DepartmentName, &p.CourseCode, &p.CourseName, &p.Credits)
		if err != nil {
			return nil, err
		}
		return &p, nil
	}, "professor courses")
}
