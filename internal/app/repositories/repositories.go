package repositories

import (
	"context"
	"time"

	"github.com/yigit/campusrecords/internal/app/models"
)

// Every method returns an error wrapping apperrors.ErrResourceNotFound when the
// addressed row does not exist, and one of ErrDuplicateKey, ErrForeignKeyViolation
// or ErrCheckViolation when a write breaks a schema constraint.

// DepartmentRepository persists departments
type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// ProfessorRepository persists professors. Delete nulls department heads,
// course professors, TA professors and account links instead of cascading.
type ProfessorRepository interface {
	Create(ctx context.Context, professor *models.Professor) error
	GetByID(ctx context.Context, id int64) (*models.Professor, error)
	GetAll(ctx context.Context) ([]*models.Professor, error)
	Update(ctx context.Context, professor *models.Professor) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository persists students. Delete cascades to every dependent row
// and nulls the student link of the user account.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	// Update writes every column except total_credits
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	SetTotalCredits(ctx context.Context, id int64, credits int) error
}

// AddressRepository persists the 1-1 student address
type AddressRepository interface {
	Upsert(ctx context.Context, address *models.Address) error
	GetByStudentID(ctx context.Context, studentID int64) (*models.Address, error)
	Delete(ctx context.Context, studentID int64) error
}

// EmergencyContactRepository persists emergency contacts
type EmergencyContactRepository interface {
	Create(ctx context.Context, contact *models.EmergencyContact) error
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.EmergencyContact, error)
	Delete(ctx context.Context, id int64) error
}

// CourseRepository persists courses
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, code string) error
}

// TeachingAssistantRepository persists teaching assistants
type TeachingAssistantRepository interface {
	Create(ctx context.Context, ta *models.TeachingAssistant) error
	GetByID(ctx context.Context, id int64) (*models.TeachingAssistant, error)
	GetByProfessorID(ctx context.Context, professorID int64) ([]*models.TeachingAssistant, error)
	Delete(ctx context.Context, id int64) error
}

// GradeRepository persists the students x courses grade junction
type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	Get(ctx context.Context, studentID int64, courseCode string) (*models.Grade, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Grade, error)
	GetByCourseCode(ctx context.Context, courseCode string) ([]*models.Grade, error)
	// Update rewrites semester and grade of an existing row
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, studentID int64, courseCode string) error
	// SumCredits totals the credits of every course the student has a grade row for
	SumCredits(ctx context.Context, studentID int64) (int, error)
}

// AttendanceRepository persists daily attendance
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Attendance, error)
	Delete(ctx context.Context, studentID int64, courseCode string, date time.Time) error
}

// FeeRepository persists fees
type FeeRepository interface {
	Create(ctx context.Context, fee *models.Fee) error
	GetByID(ctx context.Context, id int64) (*models.Fee, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Fee, error)
	Update(ctx context.Context, fee *models.Fee) error
	// ListPendingDueBefore returns Pending fees whose due date is strictly before date
	ListPendingDueBefore(ctx context.Context, date time.Time) ([]*models.Fee, error)
}

// BookRepository persists library titles
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	GetAll(ctx context.Context) ([]*models.Book, error)
	Delete(ctx context.Context, id int64) error
}

// BookIssueRepository persists book loans
type BookIssueRepository interface {
	Create(ctx context.Context, issue *models.BookIssue) error
	GetByID(ctx context.Context, id int64) (*models.BookIssue, error)
	// FindOpen returns the unreturned issue of bookID to studentID and locks it
	// for the rest of the transaction where the store supports row locks.
	FindOpen(ctx context.Context, studentID, bookID int64) (*models.BookIssue, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.BookIssue, error)
	SetReturnDate(ctx context.Context, id int64, returnDate time.Time) error
}

// UserAccountRepository persists user accounts
type UserAccountRepository interface {
	Create(ctx context.Context, account *models.UserAccount) error
	GetByID(ctx context.Context, id int64) (*models.UserAccount, error)
	GetByUsername(ctx context.Context, username string) (*models.UserAccount, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}

// NotificationRepository persists notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByUserID(ctx context.Context, userID int64) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

// FeedbackRepository persists course feedback
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByCourseCode(ctx context.Context, courseCode string) ([]*models.Feedback, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Feedback, error)
}

// ReportRepository reads the four schema views
type ReportRepository interface {
	StudentProfiles(ctx context.Context) ([]*models.StudentProfile, error)
	StudentProfile(ctx context.Context, studentID int64) (*models.StudentProfile, error)
	CourseEnrollment(ctx context.Context) ([]*models.CourseEnrollment, error)
	AttendanceReport(ctx context.Context) ([]*models.AttendanceReport, error)
	ProfessorCourses(ctx context.Context) ([]*models.ProfessorCourse, error)
}

// Repositories holds all the repository instances bound to one transaction
type Repositories struct {
	Departments        DepartmentRepository
	Professors         ProfessorRepository
	Students           StudentRepository
	Addresses          AddressRepository
	EmergencyContacts  EmergencyContactRepository
	Courses            CourseRepository
	TeachingAssistants TeachingAssistantRepository
	Grades             GradeRepository
	Attendance         AttendanceRepository
	Fees               FeeRepository
	Books              BookRepository
	BookIssues         BookIssueRepository
	UserAccounts       UserAccountRepository
	Notifications      NotificationRepository
	Feedback           FeedbackRepository
	Reports            ReportRepository
}

// TxFn runs against repositories bound to a single transaction
type TxFn func(ctx context.Context, repos *Repositories) error

// Store is the session layer. WithTransaction commits when fn returns nil and
// discards every write made by fn otherwise. Transactions must not be nested.
type Store interface {
	WithTransaction(ctx context.Context, fn TxFn) error
	Close()
}
