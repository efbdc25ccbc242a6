package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func ptr[T any](v T) *T { return &v }

// tx runs fn in its own transaction and fails the test on error
func tx(t *testing.T, s *Store, fn repositories.TxFn) {
	t.Helper()
	require.NoError(t, s.WithTransaction(context.Background(), fn))
}

func newStudent(email string) *models.Student {
	return &models.Student{FirstName: "Test", LastName: "Student", Email: email, EnrollmentDate: day(2024, 9, 1)}
}

func TestFailedTransactionRollsBack(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.WithTransaction(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		if err := r.Students.Create(ctx, newStudent("a@x.edu")); err != nil {
			return err
		}
		return r.Students.Create(ctx, newStudent("a@x.edu"))
	})
	require.ErrorIs(t, err, apperrors.ErrDuplicateKey)
	assert.Equal(t, "students_email_key", apperrors.ConstraintName(err))

	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		all, err := r.Students.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		// the serial was rolled back with the row
		st := newStudent("a@x.edu")
		require.NoError(t, r.Students.Create(ctx, st))
		assert.Equal(t, int64(1), st.ID)
		return nil
	})
}

func TestPanicRollsBackAndRepanics(t *testing.T) {
	s := NewStore()

	assert.Panics(t, func() {
		_ = s.WithTransaction(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
			_ = r.Departments.Create(ctx, &models.Department{Name: "Physics"})
			panic("boom")
		})
	})

	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		all, err := r.Departments.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
		return nil
	})
}

func TestCanceledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithTransaction(ctx, func(context.Context, *repositories.Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	s := NewStore()
	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		st := newStudent("copy@x.edu")
		st.Phone = ptr("555")
		require.NoError(t, r.Students.Create(ctx, st))
		*st.Phone = "changed"

		got, err := r.Students.GetByID(ctx, st.ID)
		require.NoError(t, err)
		assert.Equal(t, "555", *got.Phone)

		got.FirstName = "Mutated"
		again, err := r.Students.GetByID(ctx, st.ID)
		require.NoError(t, err)
		assert.Equal(t, "Test", again.FirstName)
		return nil
	})
}

func TestStudentCreditsOnlyMoveThroughSetTotalCredits(t *testing.T) {
	s := NewStore()
	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		st := newStudent("credits@x.edu")
		st.TotalCredits = 40
		require.NoError(t, r.Students.Create(ctx, st))
		assert.Zero(t, st.TotalCredits)

		require.NoError(t, r.Students.SetTotalCredits(ctx, st.ID, 9))
		st.TotalCredits = 100
		st.FirstName = "Renamed"
		require.NoError(t, r.Students.Update(ctx, st))

		got, err := r.Students.GetByID(ctx, st.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.TotalCredits)
		assert.Equal(t, "Renamed", got.FirstName)

		err = r.Students.SetTotalCredits(ctx, st.ID, -1)
		assert.ErrorIs(t, err, apperrors.ErrCheckViolation)
		return nil
	})
}

func TestConstraints(t *testing.T) {
	s := NewStore()
	var studentID int64
	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		st := newStudent("c@x.edu")
		require.NoError(t, r.Students.Create(ctx, st))
		studentID = st.ID
		return r.Courses.Create(ctx, &models.Course{Code: "CS101", Name: "Intro", Credits: 4})
	})

	tests := []struct {
		name       string
		fn         repositories.TxFn
		sentinel   error
		constraint string
	}{
		{
			name: "course credits out of range",
			fn: func(ctx context.Context, r *repositories.Repositories) error {
				return r.Courses.Create(ctx, &models.Course{Code: "BIG", Name: "Big", Credits: 11})
			},
			sentinel:   apperrors.ErrCheckViolation,
			constraint: "courses_credits_check",
		},
		{
			name: "duplicate course code",
			fn: func(ctx context.Context, r *repositories.Repositories) error {
				return r.Courses.Create(ctx, &models.Course{Code: "CS101", Name: "Again", Credits: 3})
			},
			sentinel:   apperrors.ErrDuplicateKey,
			constraint: "courses_pkey",
		},
		{
			name: "grade for unknown course",
			fn: func(ctx context.Context, r *repositories.Repositories) error {
				return r.Grades.Create(ctx, &models.Grade{StudentID: studentID, CourseCode: "NOPE", Semester: "Fall 2024"})
			},
			sentinel: apperrors.ErrForeignKeyViolation,
		},
		{
			name: "letter grade outside the set",
			fn: func(ctx context.Context, r *repositories.Repositories) error {
				g := models.LetterGrade("E")
				return r.Grades.Create(ctx, &models.Grade{StudentID: studentID, CourseCode: "CS101", Semester: "Fall 2024", Grade: &g})
			},
			sentinel:   apperrors.ErrCheckViolation,
			constraint: "grades_grade_check",
		},
		{
			name: "attendance status outside the set",
			fn: func(ctx context.Context, r *repositories.Repositories) error {
				return r.Attendance.Create(ctx, &models.Attendance{StudentID: studentID, CourseCode: "CS101", Date: day(2024, 9, 2), Status: "Late"})
			},
			sentinel:   apperrors.ErrCheckViolation,
			constraint: "attendance_status_check",
		},
		{
			name: "negative fee",
			fn: func(ctx context.Context, r *repositories.Repositories) error {
				return r.Fees.Create(ctx, &models.Fee{StudentID: studentID, Amount: -1, DueDate: day(2024, 9, 1), Status: models.FeePending})
			},
			sentinel:   apperrors.ErrCheckViolation,
			constraint: "fees_amount_check",
		},
		{
			name: "feedback rating above five",
			fn: func(ctx context.Context, r *repositories.Repositories) error {
				return r.Feedback.Create(ctx, &models.Feedback{StudentID: studentID, CourseCode: "CS101", Rating: 6})
			},
			sentinel:   apperrors.ErrCheckViolation,
			constraint: "feedback_rating_check",
		},
		{
			name: "account linked to both student and professor",
			fn: func(ctx context.Context, r *repositories.Repositories) error {
				p := &models.Professor{FirstName: "P", LastName: "Q", Email: "p@x.edu"}
				if err := r.Professors.Create(ctx, p); err != nil {
					return err
				}
				return r.UserAccounts.Create(ctx, &models.UserAccount{
					Username: "both", PasswordHash: "h", Role: models.RoleAdmin,
					StudentID: &studentID, ProfessorID: &p.ID,
				})
			},
			sentinel:   apperrors.ErrCheckViolation,
			constraint: "user_accounts_single_link_check",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.WithTransaction(context.Background(), tt.fn)
			require.ErrorIs(t, err, tt.sentinel)
			if tt.constraint != "" {
				assert.Equal(t, tt.constraint, apperrors.ConstraintName(err))
			}
		})
	}
}

func TestDeleteStudentCascades(t *testing.T) {
	s := NewStore()
	var studentID, accountID int64
	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		st := newStudent("gone@x.edu")
		require.NoError(t, r.Students.Create(ctx, st))
		studentID = st.ID

		book := &models.Book{Title: "SICP", Author: "Abelson"}
		require.NoError(t, r.Books.Create(ctx, book))
		require.NoError(t, r.Courses.Create(ctx, &models.Course{Code: "CS101", Name: "Intro", Credits: 4}))
		require.NoError(t, r.Addresses.Upsert(ctx, &models.Address{StudentID: st.ID, Street: "1 Main", City: "Ankara", Country: "TR"}))
		require.NoError(t, r.EmergencyContacts.Create(ctx, &models.EmergencyContact{StudentID: st.ID, Name: "Mom", Relationship: "Parent", Phone: "1"}))
		require.NoError(t, r.Grades.Create(ctx, &models.Grade{StudentID: st.ID, CourseCode: "CS101", Semester: "Fall 2024"}))
		require.NoError(t, r.Attendance.Create(ctx, &models.Attendance{StudentID: st.ID, CourseCode: "CS101", Date: day(2024, 9, 2), Status: models.AttendancePresent}))
		require.NoError(t, r.Fees.Create(ctx, &models.Fee{StudentID: st.ID, Amount: 100, DueDate: day(2024, 10, 1), Status: models.FeePending}))
		require.NoError(t, r.BookIssues.Create(ctx, &models.BookIssue{StudentID: st.ID, BookID: book.ID, IssueDate: day(2024, 9, 3)}))
		require.NoError(t, r.Feedback.Create(ctx, &models.Feedback{StudentID: st.ID, CourseCode: "CS101", Rating: 5}))

		account := &models.UserAccount{Username: "gone", PasswordHash: "h", Role: models.RoleStudent, StudentID: &st.ID}
		require.NoError(t, r.UserAccounts.Create(ctx, account))
		accountID = account.ID

		return r.Students.Delete(ctx, st.ID)
	})

	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		_, err := r.Addresses.GetByStudentID(ctx, studentID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

		contacts, _ := r.EmergencyContacts.GetByStudentID(ctx, studentID)
		grades, _ := r.Grades.GetByStudentID(ctx, studentID)
		attendance, _ := r.Attendance.GetByStudentID(ctx, studentID)
		fees, _ := r.Fees.GetByStudentID(ctx, studentID)
		issues, _ := r.BookIssues.GetByStudentID(ctx, studentID)
		feedback, _ := r.Feedback.GetByStudentID(ctx, studentID)
		assert.Empty(t, contacts)
		assert.Empty(t, grades)
		assert.Empty(t, attendance)
		assert.Empty(t, fees)
		assert.Empty(t, issues)
		assert.Empty(t, feedback)

		account, err := r.UserAccounts.GetByID(ctx, accountID)
		require.NoError(t, err)
		assert.Nil(t, account.StudentID)
		return nil
	})
}

func TestDeleteDepartmentClearsReferences(t *testing.T) {
	s := NewStore()
	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		d := &models.Department{Name: "CS"}
		require.NoError(t, r.Departments.Create(ctx, d))
		st := newStudent("dept@x.edu")
		st.DepartmentID = &d.ID
		require.NoError(t, r.Students.Create(ctx, st))
		require.NoError(t, r.Courses.Create(ctx, &models.Course{Code: "CS101", Name: "Intro", Credits: 4, DepartmentID: &d.ID}))

		require.NoError(t, r.Departments.Delete(ctx, d.ID))

		got, err := r.Students.GetByID(ctx, st.ID)
		require.NoError(t, err)
		assert.Nil(t, got.DepartmentID)
		course, err := r.Courses.GetByCode(ctx, "CS101")
		require.NoError(t, err)
		assert.Nil(t, course.DepartmentID)
		return nil
	})
}

func TestBookIssueOpenUniqueness(t *testing.T) {
	s := NewStore()
	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		st := newStudent("reader@x.edu")
		require.NoError(t, r.Students.Create(ctx, st))
		book := &models.Book{Title: "TAOCP", Author: "Knuth", ISBN: ptr("9780201896831")}
		require.NoError(t, r.Books.Create(ctx, book))

		err := r.Books.Create(ctx, &models.Book{Title: "Copy", Author: "Knuth", ISBN: ptr("9780201896831")})
		assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)

		first := &models.BookIssue{StudentID: st.ID, BookID: book.ID, IssueDate: day(2024, 1, 10)}
		require.NoError(t, r.BookIssues.Create(ctx, first))

		err = r.BookIssues.Create(ctx, &models.BookIssue{StudentID: st.ID, BookID: book.ID, IssueDate: day(2024, 1, 11)})
		assert.ErrorIs(t, err, apperrors.ErrBookAlreadyIssued)

		open, err := r.BookIssues.FindOpen(ctx, st.ID, book.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, open.ID)

		err = r.BookIssues.SetReturnDate(ctx, first.ID, day(2024, 1, 9))
		assert.ErrorIs(t, err, apperrors.ErrCheckViolation)
		require.NoError(t, r.BookIssues.SetReturnDate(ctx, first.ID, day(2024, 1, 20)))

		_, err = r.BookIssues.FindOpen(ctx, st.ID, book.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

		again := &models.BookIssue{StudentID: st.ID, BookID: book.ID, IssueDate: day(2024, 2, 1)}
		require.NoError(t, r.BookIssues.Create(ctx, again))

		issues, err := r.BookIssues.GetByStudentID(ctx, st.ID)
		require.NoError(t, err)
		require.Len(t, issues, 2)
		assert.Equal(t, again.ID, issues[0].ID)
		return nil
	})
}

func TestSumCredits(t *testing.T) {
	s := NewStore()
	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		st := newStudent("sum@x.edu")
		require.NoError(t, r.Students.Create(ctx, st))
		require.NoError(t, r.Courses.Create(ctx, &models.Course{Code: "A", Name: "A", Credits: 3}))
		require.NoError(t, r.Courses.Create(ctx, &models.Course{Code: "B", Name: "B", Credits: 4}))

		total, err := r.Grades.SumCredits(ctx, st.ID)
		require.NoError(t, err)
		assert.Zero(t, total)

		require.NoError(t, r.Grades.Create(ctx, &models.Grade{StudentID: st.ID, CourseCode: "A", Semester: "S1"}))
		require.NoError(t, r.Grades.Create(ctx, &models.Grade{StudentID: st.ID, CourseCode: "B", Semester: "S1"}))

		total, err = r.Grades.SumCredits(ctx, st.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		return nil
	})
}

func TestListPendingDueBefore(t *testing.T) {
	s := NewStore()
	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		st := newStudent("fees@x.edu")
		require.NoError(t, r.Students.Create(ctx, st))
		for _, f := range []*models.Fee{
			{StudentID: st.ID, Amount: 10, DueDate: day(2024, 1, 1), Status: models.FeePending},
			{StudentID: st.ID, Amount: 20, DueDate: day(2024, 3, 1), Status: models.FeePending},
			{StudentID: st.ID, Amount: 30, DueDate: day(2024, 1, 1), Status: models.FeePaid},
			{StudentID: st.ID, Amount: 40, DueDate: day(2024, 2, 1), Status: models.FeePending},
		} {
			require.NoError(t, r.Fees.Create(ctx, f))
		}

		due, err := r.Fees.ListPendingDueBefore(ctx, day(2024, 2, 1))
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, 10.0, due[0].Amount)
		return nil
	})
}

func TestReportViews(t *testing.T) {
	s := NewStore()
	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		d := &models.Department{Name: "CS"}
		require.NoError(t, r.Departments.Create(ctx, d))
		p := &models.Professor{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.edu", DepartmentID: &d.ID}
		require.NoError(t, r.Professors.Create(ctx, p))
		idle := &models.Professor{FirstName: "Idle", LastName: "Prof", Email: "idle@x.edu"}
		require.NoError(t, r.Professors.Create(ctx, idle))

		st := newStudent("view@x.edu")
		st.DepartmentID = &d.ID
		require.NoError(t, r.Students.Create(ctx, st))
		require.NoError(t, r.Addresses.Upsert(ctx, &models.Address{StudentID: st.ID, Street: "1 Main", City: "Izmir", Country: "TR"}))
		require.NoError(t, r.Courses.Create(ctx, &models.Course{Code: "CS101", Name: "Intro", Credits: 4, ProfessorID: &p.ID}))
		require.NoError(t, r.Grades.Create(ctx, &models.Grade{StudentID: st.ID, CourseCode: "CS101", Semester: "Fall 2024"}))

		for i, status := range []models.AttendanceStatus{models.AttendancePresent, models.AttendancePresent, models.AttendanceAbsent} {
			require.NoError(t, r.Attendance.Create(ctx, &models.Attendance{
				StudentID: st.ID, CourseCode: "CS101", Date: day(2024, 9, 2+i), Status: status,
			}))
		}

		profiles, err := r.Reports.StudentProfiles(ctx)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "CS", *profiles[0].DepartmentName)
		assert.Equal(t, "Izmir", *profiles[0].City)

		enrollment, err := r.Reports.CourseEnrollment(ctx)
		require.NoError(t, err)
		require.Len(t, enrollment, 1)
		assert.Equal(t, "Ada Lovelace", *enrollment[0].ProfessorName)
		assert.Nil(t, enrollment[0].Grade)

		report, err := r.Reports.AttendanceReport(ctx)
		require.NoError(t, err)
		require.Len(t, report, 1)
		assert.Equal(t, 3, report[0].TotalSessions)
		assert.Equal(t, 2, report[0].PresentCount)
		assert.Equal(t, 66.67, report[0].AttendancePercentage)

		courses, err := r.Reports.ProfessorCourses(ctx)
		require.NoError(t, err)
		require.Len(t, courses, 2)
		assert.Equal(t, "CS101", *courses[0].CourseCode)
		assert.Nil(t, courses[1].CourseCode)
		return nil
	})
}

func TestAttendancePercentage(t *testing.T) {
	assert.Equal(t, 0.0, AttendancePercentage(0, 0))
	assert.Equal(t, 100.0, AttendancePercentage(4, 4))
	assert.Equal(t, 33.33, AttendancePercentage(1, 3))
}

func TestWithClockStampsAccounts(t *testing.T) {
	fixed := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return fixed }))

	tx(t, s, func(ctx context.Context, r *repositories.Repositories) error {
		account := &models.UserAccount{Username: "admin", PasswordHash: "h", Role: models.RoleAdmin}
		require.NoError(t, r.UserAccounts.Create(ctx, account))
		assert.True(t, fixed.Equal(account.CreatedAt))
		return nil
	})
}

func TestNotFoundIsTyped(t *testing.T) {
	s := NewStore()
	err := s.WithTransaction(context.Background(), func(ctx context.Context, r *repositories.Repositories) error {
		_, err := r.Courses.GetByCode(ctx, "MISSING")
		return err
	})
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	assert.Contains(t, err.Error(), "course MISSING not found")
}
