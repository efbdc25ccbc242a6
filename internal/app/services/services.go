package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/helpers"
)

// Services defined in this package:
// - DepartmentService, ProfessorService, StudentService, CourseService: entity CRUD
// - GradeService: grade rows and the total_credits recompute
// - AttendanceService, FeedbackService: per-course student records
// - FeeService: fee rows and overdue escalation
// - LibraryService: books and issues, one open issue per (student, book)
// - AccountService: user accounts, credentials and notifications
// - ReportService: the reporting views
type Services struct {
	Departments *DepartmentService
	Professors  *ProfessorService
	Students    *StudentService
	Courses     *CourseService
	Grades      *GradeService
	Attendance  *AttendanceService
	Fees        *FeeService
	Library     *LibraryService
	Accounts    *AccountService
	Feedback    *FeedbackService
	Reports     *ReportService
}

// Clock decides what "today" is
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// Today is the current calendar date in the clock's location, as midnight UTC
func (c Clock) Today() time.Time {
	return helpers.Today(c.Now, c.Location)
}

// Option configures NewServices
type Option func(*Clock)

// WithNow replaces time.Now
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.Now = now
	}
}

// WithLocation sets the zone used to decide the current date
func WithLocation(loc *time.Location) Option {
	return func(c *Clock) {
		if loc != nil {
			c.Location = loc
		}
	}
}

// NewServices wires every service over one store
func NewServices(store repositories.Store, opts ...Option) *Services {
	clock := Clock{Now: time.Now, Location: time.UTC}
	for _, opt := range opts {
		opt(&clock)
	}

	return &Services{
		Departments: NewDepartmentService(store),
		Professors:  NewProfessorService(store),
		Students:    NewStudentService(store, clock),
		Courses:     NewCourseService(store),
		Grades:      NewGradeService(store),
		Attendance:  NewAttendanceService(store),
		Fees:        NewFeeService(store, clock),
		Library:     NewLibraryService(store, clock),
		Accounts:    NewAccountService(store),
		Feedback:    NewFeedbackService(store),
		Reports:     NewReportService(store),
	}
}

// SweepResult summarizes a maintenance pass over many rows
type SweepResult struct {
	RunID    uuid.UUID `json:"runId"`
	Scanned  int       `json:"scanned"`
	Affected int       `json:"affected"`
}

type runIDKey struct{}

// WithRunID tags ctx with the id of the command driving it
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFrom returns the id set by WithRunID, or a fresh one
func RunIDFrom(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(runIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.New()
}
