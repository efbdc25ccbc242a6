package services

import (
	"context"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/helpers"
	"github.com/yigit/campusrecords/internal/pkg/logger"
	"github.com/yigit/campusrecords/internal/pkg/validation"
)

// RegisterStudentInput is a student with the rows created alongside it
type RegisterStudentInput struct {
	Student  *models.Student
	Address  *models.Address
	Contacts []*models.EmergencyContact
}

// StudentService handles students, their address and emergency contacts
type StudentService struct {
	store repositories.Store
	clock Clock
}

// NewStudentService creates a new StudentService
func NewStudentService(store repositories.Store, clock Clock) *StudentService {
	return &StudentService{store: store, clock: clock}
}

func (s *StudentService) normalize(student *models.Student) {
	if student.EnrollmentDate.IsZero() {
		student.EnrollmentDate = s.clock.Today()
	} else {
		student.EnrollmentDate = helpers.TruncateDate(student.EnrollmentDate)
	}
	if student.DateOfBirth != nil {
		d := helpers.TruncateDate(*student.DateOfBirth)
		student.DateOfBirth = &d
	}
}

// RegisterStudent creates a student with an optional address and contacts in one transaction
func (s *StudentService) RegisterStudent(ctx context.Context, input RegisterStudentInput) (*models.Student, error) {
	student := input.Student
	if student == nil {
		return nil, apperrors.NewBadRequestError("student is required")
	}
	if err := validation.Struct(student); err != nil {
		return nil, err
	}
	s.normalize(student)

	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if err := repos.Students.Create(ctx, student); err != nil {
			return err
		}

		if input.Address != nil {
			input.Address.StudentID = student.ID
			if err := validation.Struct(input.Address); err != nil {
				return err
			}
			if err := repos.Addresses.Upsert(ctx, input.Address); err != nil {
				return err
			}
		}

		for _, contact := range input.Contacts {
			contact.StudentID = student.ID
			if err := validation.Struct(contact); err != nil {
				return err
			}
			if err := repos.EmergencyContacts.Create(ctx, contact); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", student.ID).Int("contacts", len(input.Contacts)).Msg("Student registered")
	return student, nil
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	var student *models.Student
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		student, err = repos.Students.GetByID(ctx, id)
		return err
	})
	return student, err
}

// ListStudents retrieves all students
func (s *StudentService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		students, err = repos.Students.GetAll(ctx)
		return err
	})
	return students, err
}

// UpdateStudent updates a student. total_credits is derived and never taken from input.
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if student == nil {
		return apperrors.NewBadRequestError("student is required")
	}
	if err := validation.Struct(student); err != nil {
		return err
	}
	s.normalize(student)

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if err := repos.Students.Update(ctx, student); err != nil {
			return err
		}
		stored, err := repos.Students.GetByID(ctx, student.ID)
		if err != nil {
			return err
		}
		student.TotalCredits = stored.TotalCredits
		return nil
	})
}

// DeleteStudent deletes a student and every dependent row; the linked account survives unlinked
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Students.Delete(ctx, id)
	})
}

// SetAddress creates or replaces the address of a student
func (s *StudentService) SetAddress(ctx context.Context, address *models.Address) error {
	if address == nil {
		return apperrors.NewBadRequestError("address is required")
	}
	if err := validation.Struct(address); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Addresses.Upsert(ctx, address)
	})
}

// GetAddress retrieves the address of a student
func (s *StudentService) GetAddress(ctx context.Context, studentID int64) (*models.Address, error) {
	var address *models.Address
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		address, err = repos.Addresses.GetByStudentID(ctx, studentID)
		return err
	})
	return address, err
}

// RemoveAddress deletes the address of a student
func (s *StudentService) RemoveAddress(ctx context.Context, studentID int64) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Addresses.Delete(ctx, studentID)
	})
}

// AddEmergencyContact adds a contact to a student
func (s *StudentService) AddEmergencyContact(ctx context.Context, contact *models.EmergencyContact) error {
	if contact == nil {
		return apperrors.NewBadRequestError("emergency contact is required")
	}
	if err := validation.Struct(contact); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.EmergencyContacts.Create(ctx, contact)
	})
}

// EmergencyContacts lists the contacts of a student
func (s *StudentService) EmergencyContacts(ctx context.Context, studentID int64) ([]*models.EmergencyContact, error) {
	var contacts []*models.EmergencyContact
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := repos.Students.GetByID(ctx, studentID); err != nil {
			return err
		}
		var err error
		contacts, err = repos.EmergencyContacts.GetByStudentID(ctx, studentID)
		return err
	})
	return contacts, err
}

// RemoveEmergencyContact deletes a contact
func (s *StudentService) RemoveEmergencyContact(ctx context.Context, id int64) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.EmergencyContacts.Delete(ctx, id)
	})
}
