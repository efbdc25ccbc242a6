package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
)

var professorColumns = []string{
	"professor_id", "first_name", "last_name", "email", "phone", "department_id", "hire_date",
}

// ProfessorRepository handles database operations for professors
type ProfessorRepository struct {
	base
}

// NewProfessorRepository creates a new professor repository
func NewProfessorRepository(q db.Querier) *ProfessorRepository {
	return &ProfessorRepository{base: newBase(q)}
}

func scanProfessor(row pgx.Row) (*models.Professor, error) {
	var p models.Professor
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.DepartmentID, &p.HireDate); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new professor
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	builder := r.sb.Insert("professors").
		Columns("first_name", "last_name", "email", "phone", "department_id", "hire_date").
		Values(professor.FirstName, professor.LastName, professor.Email, professor.Phone, professor.DepartmentID, professor.HireDate).
		Suffix("RETURNING professor_id")
	return r.insertReturning(ctx, builder, "professor", &professor.ID)
}

// GetByID retrieves a professor by ID
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	builder := r.sb.Select(professorColumns...).
		From("professors").
		Where(squirrel.Eq{"professor_id": id})
	return getOne(ctx, r.base, builder, scanProfessor, "professor", id)
}

// GetAll retrieves all professors
func (r *ProfessorRepository) GetAll(ctx context.Context) ([]*models.Professor, error) {
	builder := r.sb.Select(professorColumns...).
		From("professors").
		OrderBy("professor_id")
	return getMany(ctx, r.base, builder, scanProfessor, "professors")
}

// Update updates an existing professor
func (r *ProfessorRepository) Update(ctx context.Context, professor *models.Professor) error {
	builder := r.sb.Update("professors").
		SetMap(map[string]interface{}{
			"first_name":    professor.FirstName,
			"last_name":     professor.LastName,
			"email":         professor.Email,
			"phone":         professor.Phone,
			"department_id": professor.DepartmentID,
			"hire_date":     professor.HireDate,
		}).
		Where(squirrel.Eq{"professor_id": professor.ID})
	return r.exec(ctx, builder, "update", "professor", professor.ID)
}

// Delete deletes a professor. The schema's ON DELETE SET NULL keeps departments,
// courses, teaching assistants and accounts that referenced them.
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) error {
	builder := r.sb.Delete("professors").Where(squirrel.Eq{"professor_id": id})
	return r.exec(ctx, builder, "delete", "professor", id)
}
