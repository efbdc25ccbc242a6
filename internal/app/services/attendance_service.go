package services

import (
	"context"
	"time"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/helpers"
	"github.com/yigit/campusrecords/internal/pkg/validation"
)

// AttendanceService records daily attendance
type AttendanceService struct {
	store repositories.Store
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(store repositories.Store) *AttendanceService {
	return &AttendanceService{store: store}
}

// MarkAttendance records the status of a student for a course on a day.
// A second mark for the same day fails with a duplicate key error.
func (s *AttendanceService) MarkAttendance(ctx context.Context, attendance *models.Attendance) error {
	if attendance == nil {
		return apperrors.NewBadRequestError("attendance is required")
	}
	if err := validation.Struct(attendance); err != nil {
		return err
	}
	attendance.Date = helpers.TruncateDate(attendance.Date)

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Attendance.Create(ctx, attendance)
	})
}

// AttendanceForStudent lists the attendance of a student
func (s *AttendanceService) AttendanceForStudent(ctx context.Context, studentID int64) ([]*models.Attendance, error) {
	var rows []*models.Attendance
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		rows, err = repos.Attendance.GetByStudentID(ctx, studentID)
		return err
	})
	return rows, err
}

// RemoveAttendance deletes one attendance entry
func (s *AttendanceService) RemoveAttendance(ctx context.Context, studentID int64, courseCode string, date time.Time) error {
	date = helpers.TruncateDate(date)
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Attendance.Delete(ctx, studentID, courseCode, date)
	})
}
