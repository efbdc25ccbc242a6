package services

import (
	"context"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
)

// ReportService reads the reporting views
type ReportService struct {
	store repositories.Store
}

// NewReportService creates a new report service
func NewReportService(store repositories.Store) *ReportService {
	return &ReportService{store: store}
}

// read runs one view query, taking ReportRepository method expressions directly
func read[T any](ctx context.Context, store repositories.Store, fn func(repositories.ReportRepository, context.Context) (T, error)) (T, error) {
	var out T
	err := store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		out, err = fn(repos.Reports, ctx)
		return err
	})
	return out, err
}

// StudentProfiles returns every row of student_profile
func (s *ReportService) StudentProfiles(ctx context.Context) ([]*models.StudentProfile, error) {
	return read(ctx, s.store, repositories.ReportRepository.StudentProfiles)
}

// StudentProfile returns the profile of one student
func (s *ReportService) StudentProfile(ctx context.Context, studentID int64) (*models.StudentProfile, error) {
	return read(ctx, s.store, func(r repositories.ReportRepository, ctx context.Context) (*models.StudentProfile, error) {
		return r.StudentProfile(ctx, studentID)
	})
}

// CourseEnrollment returns every row of course_enrollment
func (s *ReportService) CourseEnrollment(ctx context.Context) ([]*models.CourseEnrollment, error) {
	return read(ctx, s.store, repositories.ReportRepository.CourseEnrollment)
}

// AttendanceReport returns every row of attendance_report
func (s *ReportService) AttendanceReport(ctx context.Context) ([]*models.AttendanceReport, error) {
	return read(ctx, s.store, repositories.ReportRepository.AttendanceReport)
}

// ProfessorCourses returns every row of professor_courses
func (s *ReportService) ProfessorCourses(ctx context.Context) ([]*models.ProfessorCourse, error) {
	return read(ctx, s.store, repositories.ReportRepository.ProfessorCourses)
}
