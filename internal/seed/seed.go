package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/campusrecords/internal/app/models"
	appServices "github.com/yigit/campusrecords/internal/app/services"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
)

// DefaultPassword is the credential of the seeded accounts
const DefaultPassword = "changeme123"

// seeder collects errors instead of stopping at the first one
type seeder struct {
	svc *appServices.Services
	lgr zerolog.Logger
	err error
}

func (s *seeder) fail(err error, msg string) {
	s.lgr.Error().Err(err).Msg(msg)
	s.err = errors.Join(s.err, err)
}

// exists treats a duplicate key as "already seeded"
func exists(err error) bool {
	return errors.Is(err, apperrors.ErrDuplicateKey)
}

// CreateDefaultData creates a small demo campus if it does not exist yet.
// Running it twice leaves the data unchanged.
func CreateDefaultData(ctx context.Context, svc *appServices.Services, lgr zerolog.Logger) error {
	s := &seeder{svc: svc, lgr: lgr}
	lgr.Info().Msg("Checking/Creating default data...")

	cs := s.department(ctx, "Computer Science")
	math := s.department(ctx, "Mathematics")

	ada := s.professor(ctx, &appModels.Professor{FirstName: "Ada", LastName: "Lovelace", Email: "ada.lovelace@campus.edu", DepartmentID: cs})
	gauss := s.professor(ctx, &appModels.Professor{FirstName: "Carl", LastName: "Gauss", Email: "carl.gauss@campus.edu", DepartmentID: math})
	s.head(ctx, cs, ada)
	s.head(ctx, math, gauss)

	s.course(ctx, &appModels.Course{Code: "CS101", Name: "Introduction to Programming", Credits: 4, DepartmentID: cs, ProfessorID: ada})
	s.course(ctx, &appModels.Course{Code: "CS201", Name: "Data Structures", Credits: 3, DepartmentID: cs, ProfessorID: ada})
	s.course(ctx, &appModels.Course{Code: "MATH101", Name: "Calculus I", Credits: 5, DepartmentID: math, ProfessorID: gauss})

	alice := s.student(ctx, appServices.RegisterStudentInput{
		Student: &appModels.Student{FirstName: "Alice", LastName: "Smith", Email: "alice.smith@student.campus.edu", DepartmentID: cs},
		Address: &appModels.Address{Street: "1 College Road", City: "Springfield", State: "IL", PostalCode: "62701", Country: "USA"},
		Contacts: []*appModels.EmergencyContact{
			{Name: "Mary Smith", Relationship: "Mother", Phone: "+1-555-0100"},
		},
	})
	bob := s.student(ctx, appServices.RegisterStudentInput{
		Student: &appModels.Student{FirstName: "Bob", LastName: "Jones", Email: "bob.jones@student.campus.edu", DepartmentID: math},
	})

	isbn := "9780134190440"
	year := 2015
	book := &appModels.Book{Title: "The Go Programming Language", Author: "Alan Donovan", ISBN: &isbn, PublishedYear: &year}
	if err := svc.Library.AddBook(ctx, book); err != nil && !exists(err) {
		s.fail(err, "Error creating book")
	}

	if alice != nil && bob != nil && s.freshStudents(ctx, alice, bob) {
		a := appModels.GradeA
		bPlus := appModels.GradeBPlus
		s.grade(ctx, &appModels.Grade{StudentID: alice.ID, CourseCode: "CS101", Semester: "Fall 2024", Grade: &a})
		s.grade(ctx, &appModels.Grade{StudentID: alice.ID, CourseCode: "MATH101", Semester: "Spring 2025"})
		s.grade(ctx, &appModels.Grade{StudentID: bob.ID, CourseCode: "CS101", Semester: "Fall 2024", Grade: &bPlus})

		today := svc.Fees.Today()
		for i, status := range []appModels.AttendanceStatus{appModels.AttendancePresent, appModels.AttendancePresent, appModels.AttendanceAbsent} {
			s.attendance(ctx, &appModels.Attendance{StudentID: alice.ID, CourseCode: "CS101", Date: today.AddDate(0, 0, -7*(i+1)), Status: status})
		}

		s.fee(ctx, &appModels.Fee{StudentID: alice.ID, Amount: 1200, DueDate: today.AddDate(0, 0, 30)})
		s.fee(ctx, &appModels.Fee{StudentID: bob.ID, Amount: 800, DueDate: today.AddDate(0, 0, -10)})

		if book.ID != 0 {
			s.loan(ctx, alice.ID, book.ID, today.AddDate(0, 0, -20), today.AddDate(0, 0, -5))
			s.loan(ctx, bob.ID, book.ID, today.AddDate(0, 0, -3), time.Time{})
		}

		rating := "Clear lectures"
		if err := svc.Feedback.SubmitFeedback(ctx, &appModels.Feedback{StudentID: alice.ID, CourseCode: "CS101", Rating: 5, Comments: &rating}); err != nil {
			s.fail(err, "Error creating feedback")
		}
	}

	if alice != nil {
		s.account(ctx, appServices.CreateAccountInput{Username: "alice", Password: DefaultPassword, Role: appModels.RoleStudent, StudentID: &alice.ID})
	}
	if ada != nil {
		s.account(ctx, appServices.CreateAccountInput{Username: "ada", Password: DefaultPassword, Role: appModels.RoleProfessor, ProfessorID: ada})
	}

	if s.err == nil {
		lgr.Info().Msg("Default data is in place")
	}
	return s.err
}

func (s *seeder) department(ctx context.Context, name string) *int64 {
	departments, err := s.svc.Departments.ListDepartments(ctx)
	if err != nil {
		s.fail(err, "Error listing departments")
		return nil
	}
	for _, d := range departments {
		if d.Name == name {
			return &d.ID
		}
	}

	d := &appModels.Department{Name: name}
	if err := s.svc.Departments.CreateDepartment(ctx, d); err != nil {
		s.fail(err, "Error creating department "+name)
		return nil
	}
	return &d.ID
}

func (s *seeder) professor(ctx context.Context, p *appModels.Professor) *int64 {
	professors, err := s.svc.Professors.ListProfessors(ctx)
	if err != nil {
		s.fail(err, "Error listing professors")
		return nil
	}
	for _, existing := range professors {
		if existing.Email == p.Email {
			return &existing.ID
		}
	}

	if p.HireDate == nil {
		hired := time.Date(2015, time.September, 1, 0, 0, 0, 0, time.UTC)
		p.HireDate = &hired
	}
	if err := s.svc.Professors.CreateProfessor(ctx, p); err != nil {
		s.fail(err, "Error creating professor "+p.Email)
		return nil
	}
	return &p.ID
}

func (s *seeder) head(ctx context.Context, departmentID, professorID *int64) {
	if departmentID == nil || professorID == nil {
		return
	}
	if err := s.svc.Departments.AssignHead(ctx, *departmentID, professorID); err != nil {
		s.fail(err, "Error assigning department head")
	}
}

func (s *seeder) course(ctx context.Context, c *appModels.Course) {
	if err := s.svc.Courses.CreateCourse(ctx, c); err != nil && !exists(err) {
		s.fail(err, "Error creating course "+c.Code)
	}
}

func (s *seeder) student(ctx context.Context, input appServices.RegisterStudentInput) *appModels.Student {
	students, err := s.svc.Students.ListStudents(ctx)
	if err != nil {
		s.fail(err, "Error listing students")
		return nil
	}
	for _, existing := range students {
		if existing.Email == input.Student.Email {
			return existing
		}
	}

	student, err := s.svc.Students.RegisterStudent(ctx, input)
	if err != nil {
		s.fail(err, "Error registering student "+input.Student.Email)
		return nil
	}
	return student
}

// freshStudents reports whether the students have no grades yet, which
// means their records still have to be seeded.
func (s *seeder) freshStudents(ctx context.Context, students ...*appModels.Student) bool {
	for _, st := range students {
		grades, err := s.svc.Grades.GradesForStudent(ctx, st.ID)
		if err != nil {
			s.fail(err, "Error listing grades")
			return false
		}
		if len(grades) > 0 {
			return false
		}
	}
	return true
}

func (s *seeder) grade(ctx context.Context, g *appModels.Grade) {
	if err := s.svc.Grades.RecordGrade(ctx, g); err != nil && !exists(err) {
		s.fail(err, "Error recording grade")
	}
}

func (s *seeder) attendance(ctx context.Context, a *appModels.Attendance) {
	if err := s.svc.Attendance.MarkAttendance(ctx, a); err != nil && !exists(err) {
		s.fail(err, "Error marking attendance")
	}
}

func (s *seeder) fee(ctx context.Context, f *appModels.Fee) {
	if err := s.svc.Fees.CreateFee(ctx, f); err != nil {
		s.fail(err, "Error creating fee")
	}
}

func (s *seeder) account(ctx context.Context, input appServices.CreateAccountInput) {
	if _, err := s.svc.Accounts.CreateAccount(ctx, input); err != nil && !exists(err) {
		s.fail(err, "Error creating account "+input.Username)
	}
}

// loan issues a book and, when returned is set, closes the issue again
func (s *seeder) loan(ctx context.Context, studentID, bookID int64, issued, returned time.Time) {
	issue, err := s.svc.Library.IssueBook(ctx, studentID, bookID, issued)
	if err != nil {
		s.fail(err, "Error issuing book")
		return
	}
	if returned.IsZero() {
		return
	}
	if _, err := s.svc.Library.ReturnBook(ctx, issue.ID, returned); err != nil {
		s.fail(err, "Error returning book")
	}
}
