package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
)

func TestDeleteStudentCascades(t *testing.T) {
	svc, store := newTestEnv(t)
	ctx := context.Background()

	student, err := svc.Students.RegisterStudent(ctx, RegisterStudentInput{
		Student:  &models.Student{FirstName: "Gone", LastName: "Soon", Email: "gone@x.edu"},
		Address:  &models.Address{Street: "1 Main", City: "Bursa", Country: "TR"},
		Contacts: []*models.EmergencyContact{{Name: "Kin", Relationship: "Sibling", Phone: "1"}},
	})
	require.NoError(t, err)
	mustCourse(t, svc, "CS101", 4)
	book := &models.Book{Title: "Go", Author: "Donovan"}
	require.NoError(t, svc.Library.AddBook(ctx, book))

	require.NoError(t, svc.Grades.RecordGrade(ctx, &models.Grade{StudentID: student.ID, CourseCode: "CS101", Semester: "Fall 2024"}))
	require.NoError(t, svc.Attendance.MarkAttendance(ctx, &models.Attendance{StudentID: student.ID, CourseCode: "CS101", Date: date(2024, 6, 3), Status: models.AttendancePresent}))
	require.NoError(t, svc.Fees.CreateFee(ctx, &models.Fee{StudentID: student.ID, Amount: 10, DueDate: date(2024, 7, 1)}))
	_, err = svc.Library.IssueBook(ctx, student.ID, book.ID, date(2024, 6, 3))
	require.NoError(t, err)
	require.NoError(t, svc.Feedback.SubmitFeedback(ctx, &models.Feedback{StudentID: student.ID, CourseCode: "CS101", Rating: 4}))

	account := &models.UserAccount{Username: "gone", PasswordHash: "x", Role: models.RoleStudent, StudentID: &student.ID}
	// insert the account row directly so the test does not pay for a bcrypt hash
	require.NoError(t, store.WithTransaction(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		return r.UserAccounts.Create(ctx, account)
	}))

	require.NoError(t, svc.Students.DeleteStudent(ctx, student.ID))

	_, err = svc.Students.GetStudent(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	_, err = svc.Students.GetAddress(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	require.NoError(t, store.WithTransaction(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		contacts, err := r.EmergencyContacts.GetByStudentID(ctx, student.ID)
		assert.Empty(t, contacts)
		return err
	}))
	_, err = svc.Students.EmergencyContacts(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	grades, err := svc.Grades.GradesForCourse(ctx, "CS101")
	require.NoError(t, err)
	assert.Empty(t, grades)
	attendance, err := svc.Attendance.AttendanceForStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, attendance)
	fees, err := svc.Fees.FeesForStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, fees)
	issues, err := svc.Library.IssuesForStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, issues)
	feedback, err := svc.Feedback.FeedbackForCourse(ctx, "CS101")
	require.NoError(t, err)
	assert.Empty(t, feedback)

	kept, err := svc.Accounts.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.StudentID)

	assert.ErrorIs(t, svc.Students.DeleteStudent(ctx, student.ID), apperrors.ErrResourceNotFound)
}

func TestDeleteProfessorNullsReferences(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	department := &models.Department{Name: "Computer Science"}
	require.NoError(t, svc.Departments.CreateDepartment(ctx, department))
	professor := mustProfessor(t, svc, "head@x.edu")
	require.NoError(t, svc.Departments.AssignHead(ctx, department.ID, &professor.ID))

	course := &models.Course{Code: "CS101", Name: "Intro", Credits: 4, DepartmentID: &department.ID, ProfessorID: &professor.ID}
	require.NoError(t, svc.Courses.CreateCourse(ctx, course))
	ta := &models.TeachingAssistant{FirstName: "T", LastName: "A", Email: "ta@x.edu", ProfessorID: &professor.ID, CourseCode: ptr("CS101")}
	require.NoError(t, svc.Professors.AddTeachingAssistant(ctx, ta))

	require.NoError(t, svc.Professors.DeleteProfessor(ctx, professor.ID))

	storedDept, err := svc.Departments.GetDepartment(ctx, department.ID)
	require.NoError(t, err)
	assert.Nil(t, storedDept.HeadID)

	storedCourse, err := svc.Courses.GetCourse(ctx, "CS101")
	require.NoError(t, err)
	assert.Nil(t, storedCourse.ProfessorID)
	require.NotNil(t, storedCourse.DepartmentID)

	storedTA, err := svc.Professors.GetTeachingAssistant(ctx, ta.ID)
	require.NoError(t, err)
	assert.Nil(t, storedTA.ProfessorID)
}

func TestAssignHeadRequiresExistingProfessor(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	department := &models.Department{Name: "Physics"}
	require.NoError(t, svc.Departments.CreateDepartment(ctx, department))

	assert.ErrorIs(t, svc.Departments.AssignHead(ctx, department.ID, ptr(int64(77))), apperrors.ErrResourceNotFound)
	require.NoError(t, svc.Departments.AssignHead(ctx, department.ID, nil))
}

func TestUpdateStudentKeepsDerivedCredits(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	student := mustStudent(t, svc, "keep@x.edu")
	mustCourse(t, svc, "CS101", 4)
	require.NoError(t, svc.Grades.RecordGrade(ctx, &models.Grade{StudentID: student.ID, CourseCode: "CS101", Semester: "Fall 2024"}))

	student.LastName = "Renamed"
	student.TotalCredits = 100
	require.NoError(t, svc.Students.UpdateStudent(ctx, student))
	assert.Equal(t, 4, student.TotalCredits)

	stored, err := svc.Students.GetStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.LastName)
	assert.Equal(t, 4, stored.TotalCredits)
}

func TestDuplicateStudentEmail(t *testing.T) {
	svc := newTestServices(t)
	mustStudent(t, svc, "same@x.edu")

	_, err := svc.Students.RegisterStudent(context.Background(), RegisterStudentInput{
		Student: &models.Student{FirstName: "Second", LastName: "One", Email: "same@x.edu"},
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
	assert.Equal(t, "students_email_key", apperrors.ConstraintName(err))
}

func TestAddressUpsertAndRemove(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	student := mustStudent(t, svc, "addr@x.edu")

	require.NoError(t, svc.Students.SetAddress(ctx, &models.Address{StudentID: student.ID, Street: "1 Main", City: "Ankara", Country: "TR"}))
	require.NoError(t, svc.Students.SetAddress(ctx, &models.Address{StudentID: student.ID, Street: "2 Side", City: "Izmir", Country: "TR"}))

	address, err := svc.Students.GetAddress(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Izmir", address.City)

	require.NoError(t, svc.Students.RemoveAddress(ctx, student.ID))
	assert.ErrorIs(t, svc.Students.RemoveAddress(ctx, student.ID), apperrors.ErrResourceNotFound)
}
