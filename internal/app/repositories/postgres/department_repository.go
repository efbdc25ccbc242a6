package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
)

var departmentColumns = []string{"department_id", "name", "head_id"}

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	base
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(q db.Querier) *DepartmentRepository {
	return &DepartmentRepository{base: newBase(q)}
}

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var d models.Department
	if err := row.Scan(&d.ID, &d.Name, &d.HeadID); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	builder := r.sb.Insert("departments").
		Columns("name", "head_id").
		Values(department.Name, department.HeadID).
		Suffix("RETURNING department_id")
	return r.insertReturning(ctx, builder, "department", &department.ID)
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	builder := r.sb.Select(departmentColumns...).
		From("departments").
		Where(squirrel.Eq{"department_id": id})
	return getOne(ctx, r.base, builder, scanDepartment, "department", id)
}

// GetAll retrieves all departments
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	builder := r.sb.Select(departmentColumns...).
		From("departments").
		OrderBy("department_id")
	return getMany(ctx, r.base, builder, scanDepartment, "departments")
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	builder := r.sb.Update("departments").
		Set("name", department.Name).
		Set("head_id", department.HeadID).
		Where(squirrel.Eq{"department_id": department.ID})
	return r.exec(ctx, builder, "update", "department", department.ID)
}

// Delete deletes a department; professors, students and courses keep their rows with department_id nulled.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	builder := r.sb.Delete("departments").Where(squirrel.Eq{"department_id": id})
	return r.exec(ctx, builder, "delete", "department", id)
}
