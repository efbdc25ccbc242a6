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

// ProfessorService handles professors and their teaching assistants
type ProfessorService struct {
	store repositories.Store
}

// NewProfessorService creates a new professor service
func NewProfessorService(store repositories.Store) *ProfessorService {
	return &ProfessorService{store: store}
}

func normalizeProfessor(p *models.Professor) {
	if p.HireDate != nil {
		d := helpers.TruncateDate(*p.HireDate)
		p.HireDate = &d
	}
}

// CreateProfessor creates a professor
func (s *ProfessorService) CreateProfessor(ctx context.Context, professor *models.Professor) error {
	if professor == nil {
		return apperrors.NewBadRequestError("professor is required")
	}
	if err := validation.Struct(professor); err != nil {
		return err
	}
	normalizeProfessor(professor)

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Professors.Create(ctx, professor)
	})
}

// GetProfessor retrieves a professor by ID
func (s *ProfessorService) GetProfessor(ctx context.Context, id int64) (*models.Professor, error) {
	var professor *models.Professor
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		professor, err = repos.Professors.GetByID(ctx, id)
		return err
	})
	return professor, err
}

// ListProfessors retrieves all professors
func (s *ProfessorService) ListProfessors(ctx context.Context) ([]*models.Professor, error) {
	var professors []*models.Professor
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		professors, err = repos.Professors.GetAll(ctx)
		return err
	})
	return professors, err
}

// UpdateProfessor updates a professor
func (s *ProfessorService) UpdateProfessor(ctx context.Context, professor *models.Professor) error {
	if professor == nil {
		return apperrors.NewBadRequestError("professor is required")
	}
	if err := validation.Struct(professor); err != nil {
		return err
	}
	normalizeProfessor(professor)

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Professors.Update(ctx, professor)
	})
}

// DeleteProfessor deletes a professor. Departments they head, courses they teach,
// their assistants and their account stay, with the reference cleared.
func (s *ProfessorService) DeleteProfessor(ctx context.Context, id int64) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if err := repos.Professors.Delete(ctx, id); err != nil {
			return err
		}
		logger.Info().Int64("professorID", id).Msg("Professor deleted, references cleared")
		return nil
	})
}

// AddTeachingAssistant creates a teaching assistant
func (s *ProfessorService) AddTeachingAssistant(ctx context.Context, ta *models.TeachingAssistant) error {
	if ta == nil {
		return apperrors.NewBadRequestError("teaching assistant is required")
	}
	if err := validation.Struct(ta); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.TeachingAssistants.Create(ctx, ta)
	})
}

// GetTeachingAssistant retrieves a teaching assistant by ID
func (s *ProfessorService) GetTeachingAssistant(ctx context.Context, id int64) (*models.TeachingAssistant, error) {
	var ta *models.TeachingAssistant
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		ta, err = repos.TeachingAssistants.GetByID(ctx, id)
		return err
	})
	return ta, err
}

// TeachingAssistants lists the assistants of a professor
func (s *ProfessorService) TeachingAssistants(ctx context.Context, professorID int64) ([]*models.TeachingAssistant, error) {
	var tas []*models.TeachingAssistant
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := repos.Professors.GetByID(ctx, professorID); err != nil {
			return err
		}
		var err error
		tas, err = repos.TeachingAssistants.GetByProfessorID(ctx, professorID)
		return err
	})
	return tas, err
}

// RemoveTeachingAssistant deletes a teaching assistant
func (s *ProfessorService) RemoveTeachingAssistant(ctx context.Context, id int64) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.TeachingAssistants.Delete(ctx, id)
	})
}
