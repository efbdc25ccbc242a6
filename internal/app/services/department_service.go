package services

import (
	"context"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/logger"
	"github.com/yigit/campusrecords/internal/pkg/validation"
)

// DepartmentService handles department-related operations
type DepartmentService struct {
	store repositories.Store
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(store repositories.Store) *DepartmentService {
	return &DepartmentService{store: store}
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	if department == nil {
		return apperrors.NewBadRequestError("department is required")
	}
	if err := validation.Struct(department); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Departments.Create(ctx, department)
	})
}

// GetDepartment retrieves a department by ID
func (s *DepartmentService) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	var department *models.Department
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		department, err = repos.Departments.GetByID(ctx, id)
		return err
	})
	return department, err
}

// ListDepartments retrieves all departments
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	var departments []*models.Department
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		departments, err = repos.Departments.GetAll(ctx)
		return err
	})
	return departments, err
}

// UpdateDepartment updates an existing department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	if department == nil {
		return apperrors.NewBadRequestError("department is required")
	}
	if err := validation.Struct(department); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Departments.Update(ctx, department)
	})
}

// AssignHead sets or clears (nil professorID) the head of a department
func (s *DepartmentService) AssignHead(ctx context.Context, departmentID int64, professorID *int64) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		department, err := repos.Departments.GetByID(ctx, departmentID)
		if err != nil {
			return err
		}
		if professorID != nil {
			if _, err := repos.Professors.GetByID(ctx, *professorID); err != nil {
				return err
			}
		}
		department.HeadID = professorID
		if err := repos.Departments.Update(ctx, department); err != nil {
			return err
		}

		logger.Info().Int64("departmentID", departmentID).Interface("headID", professorID).Msg("Department head assigned")
		return nil
	})
}

// DeleteDepartment deletes a department; members keep their rows with the reference cleared
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Departments.Delete(ctx, id)
	})
}
