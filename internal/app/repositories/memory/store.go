// Package memory is an in-process store with the same constraint and cascade
// behaviour as the PostgreSQL schema. It backs the memory driver and the tests.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/helpers"
	"github.com/yigit/campusrecords/internal/pkg/logger"
)

type gradeKey struct {
	studentID  int64
	courseCode string
}

type attendanceKey struct {
	studentID  int64
	courseCode string
	date       string
}

// tables holds every row. Values are stored by value; pointer fields are
// cloned on the way in and out so callers never alias stored rows.
type tables struct {
	departments   map[int64]models.Department
	professors    map[int64]models.Professor
	students      map[int64]models.Student
	addresses     map[int64]models.Address
	contacts      map[int64]models.EmergencyContact
	courses       map[string]models.Course
	assistants    map[int64]models.TeachingAssistant
	grades        map[gradeKey]models.Grade
	attendance    map[attendanceKey]models.Attendance
	fees          map[int64]models.Fee
	books         map[int64]models.Book
	issues        map[int64]models.BookIssue
	accounts      map[int64]models.UserAccount
	notifications map[int64]models.Notification
	feedback      map[int64]models.Feedback
	seq           map[string]int64
}

func newTables() *tables {
	return &tables{
		departments:   map[int64]models.Department{},
		professors:    map[int64]models.Professor{},
		students:      map[int64]models.Student{},
		addresses:     map[int64]models.Address{},
		contacts:      map[int64]models.EmergencyContact{},
		courses:       map[string]models.Course{},
		assistants:    map[int64]models.TeachingAssistant{},
		grades:        map[gradeKey]models.Grade{},
		attendance:    map[attendanceKey]models.Attendance{},
		fees:          map[int64]models.Fee{},
		books:         map[int64]models.Book{},
		issues:        map[int64]models.BookIssue{},
		accounts:      map[int64]models.UserAccount{},
		notifications: map[int64]models.Notification{},
		feedback:      map[int64]models.Feedback{},
		seq:           map[string]int64{},
	}
}

// clone is a shallow copy of every map; stored values are never mutated in
// place, so sharing their pointer fields with the snapshot is safe.
func (t *tables) clone() *tables {
	return &tables{
		departments:   maps.Clone(t.departments),
		professors:    maps.Clone(t.professors),
		students:      maps.Clone(t.students),
		addresses:     maps.Clone(t.addresses),
		contacts:      maps.Clone(t.contacts),
		courses:       maps.Clone(t.courses),
		assistants:    maps.Clone(t.assistants),
		grades:        maps.Clone(t.grades),
		attendance:    maps.Clone(t.attendance),
		fees:          maps.Clone(t.fees),
		books:         maps.Clone(t.books),
		issues:        maps.Clone(t.issues),
		accounts:      maps.Clone(t.accounts),
		notifications: maps.Clone(t.notifications),
		feedback:      maps.Clone(t.feedback),
		seq:           maps.Clone(t.seq),
	}
}

// next returns the next serial value of a table, starting at 1
func (t *tables) next(table string) int64 {
	t.seq[table]++
	return t.seq[table]
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used for created_at style columns
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is a serializable in-memory implementation of repositories.Store.
// One transaction runs at a time; a failed transaction restores the snapshot
// taken when it started.
type Store struct {
	mu   sync.Mutex
	data *tables
	now  func() time.Time
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: newTables(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTransaction implements repositories.Store
func (s *Store) WithTransaction(ctx context.Context, fn repositories.TxFn) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			logger.Error().Interface("panic", p).Msg("Panic in memory transaction, rolled back")
			panic(p)
		}
		if err != nil {
			s.data = snapshot
			logger.Debug().Err(err).Msg("Memory transaction rolled back")
		}
	}()

	if err = fn(ctx, s.repositories()); err != nil {
		return err
	}
	return ctx.Err()
}

// Close is a no-op
func (s *Store) Close() {}

func (s *Store) repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Departments:        &departmentRepo{s},
		Professors:         &professorRepo{s},
		Students:           &studentRepo{s},
		Addresses:          &addressRepo{s},
		EmergencyContacts:  &contactRepo{s},
		Courses:            &courseRepo{s},
		TeachingAssistants: &assistantRepo{s},
		Grades:             &gradeRepo{s},
		Attendance:         &attendanceRepo{s},
		Fees:               &feeRepo{s},
		Books:              &bookRepo{s},
		BookIssues:         &bookIssueRepo{s},
		UserAccounts:       &accountRepo{s},
		Notifications:      &notificationRepo{s},
		Feedback:           &feedbackRepo{s},
		Reports:            &reportRepo{s},
	}
}

func duplicate(constraint string) error {
	return apperrors.NewConstraintError(apperrors.ErrDuplicateKey, constraint)
}

func foreignKey(constraint string) error {
	return apperrors.NewConstraintError(apperrors.ErrForeignKeyViolation, constraint)
}

func checkFailed(constraint string) error {
	return apperrors.NewConstraintError(apperrors.ErrCheckViolation, constraint)
}

func notFound(resource string, key interface{}) error {
	return apperrors.NewResourceNotFoundError(resource, key)
}

func dateKey(t time.Time) string {
	return helpers.FormatDate(t)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// list copies the rows of m accepted by keep, ordered by less
func list[K comparable, V any](m map[K]V, keep func(V) bool, clone func(V) *V, less func(a, b *V) bool) []*V {
	out := []*V{}
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, clone(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
