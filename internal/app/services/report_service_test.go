package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
)

func TestFeedbackAverage(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	alice := mustStudent(t, svc, "alice@x.edu")
	bob := mustStudent(t, svc, "bob@x.edu")
	mustCourse(t, svc, "CS101", 4)

	avg, count, err := svc.Feedback.AverageRating(ctx, "CS101")
	require.NoError(t, err)
	assert.Zero(t, avg)
	assert.Zero(t, count)

	require.NoError(t, svc.Feedback.SubmitFeedback(ctx, &models.Feedback{StudentID: alice.ID, CourseCode: "CS101", Rating: 5}))
	require.NoError(t, svc.Feedback.SubmitFeedback(ctx, &models.Feedback{StudentID: bob.ID, CourseCode: "CS101", Rating: 2, Comments: ptr("too fast")}))

	avg, count, err = svc.Feedback.AverageRating(ctx, "CS101")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 3.5, avg, 0.001)

	mine, err := svc.Feedback.FeedbackByStudent(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "too fast", *mine[0].Comments)
}

func TestReportsReadThroughTheStore(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	department := &models.Department{Name: "Mathematics"}
	require.NoError(t, svc.Departments.CreateDepartment(ctx, department))
	professor := &models.Professor{FirstName: "Carl", LastName: "Gauss", Email: "gauss@x.edu", DepartmentID: &department.ID}
	require.NoError(t, svc.Professors.CreateProfessor(ctx, professor))
	require.NoError(t, svc.Courses.CreateCourse(ctx, &models.Course{Code: "MATH101", Name: "Calculus", Credits: 5, ProfessorID: &professor.ID}))

	student := mustStudent(t, svc, "r@x.edu")
	require.NoError(t, svc.Grades.RecordGrade(ctx, &models.Grade{StudentID: student.ID, CourseCode: "MATH101", Semester: "Fall 2024"}))
	for i, status := range []models.AttendanceStatus{models.AttendancePresent, models.AttendanceAbsent, models.AttendancePresent, models.AttendancePresent} {
		require.NoError(t, svc.Attendance.MarkAttendance(ctx, &models.Attendance{
			StudentID: student.ID, CourseCode: "MATH101", Date: date(2024, 6, 3+i), Status: status,
		}))
	}

	err := svc.Attendance.MarkAttendance(ctx, &models.Attendance{StudentID: student.ID, CourseCode: "MATH101", Date: date(2024, 6, 3), Status: models.AttendanceAbsent})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

	profile, err := svc.Reports.StudentProfile(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, profile.TotalCredits)
	assert.Nil(t, profile.City)

	enrollment, err := svc.Reports.CourseEnrollment(ctx)
	require.NoError(t, err)
	require.Len(t, enrollment, 1)
	assert.Equal(t, "Carl Gauss", *enrollment[0].ProfessorName)

	attendance, err := svc.Reports.AttendanceReport(ctx)
	require.NoError(t, err)
	require.Len(t, attendance, 1)
	assert.Equal(t, 75.0, attendance[0].AttendancePercentage)

	courses, err := svc.Reports.ProfessorCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Mathematics", *courses[0].DepartmentName)

	profiles, err := svc.Reports.StudentProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)

	_, err = svc.Reports.StudentProfile(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
