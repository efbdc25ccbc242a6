package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
)

var courseColumns = []string{"course_code", "course_name", "credits", "department_id", "professor_id"}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	base
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(q db.Querier) *CourseRepository {
	return &CourseRepository{base: newBase(q)}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	if err := row.Scan(&c.Code, &c.Name, &c.Credits, &c.DepartmentID, &c.ProfessorID); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new course. The code is caller supplied.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	builder := r.sb.Insert("courses").
		Columns(courseColumns...).
		Values(course.Code, course.Name, course.Credits, course.DepartmentID, course.ProfessorID).
		Suffix("RETURNING course_code")
	return r.insertReturning(ctx, builder, "course", &course.Code)
}

// GetByCode retrieves a course by its code
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	builder := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"course_code": code})
	return getOne(ctx, r.base, builder, scanCourse, "course", code)
}

// GetAll retrieves all courses
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	builder := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("course_code")
	return getMany(ctx, r.base, builder, scanCourse, "courses")
}

// Update updates name, credits and ownership of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	builder := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"course_name":   course.Name,
			"credits":       course.Credits,
			"department_id": course.DepartmentID,
			"professor_id":  course.ProfessorID,
		}).
		Where(squirrel.Eq{"course_code": course.Code})
	return r.exec(ctx, builder, "update", "course", course.Code)
}

// Delete deletes a course together with its grades, attendance and feedback
func (r *CourseRepository) Delete(ctx context.Context, code string) error {
	builder := r.sb.Delete("courses").Where(squirrel.Eq{"course_code": code})
	return r.exec(ctx, builder, "delete", "course", code)
}

var teachingAssistantColumns = []string{"ta_id", "first_name", "last_name", "email", "professor_id", "course_code"}

// TeachingAssistantRepository handles database operations for teaching assistants
type TeachingAssistantRepository struct {
	base
}

// NewTeachingAssistantRepository creates a new teaching assistant repository
func NewTeachingAssistantRepository(q db.Querier) *TeachingAssistantRepository {
	return &TeachingAssistantRepository{base: newBase(q)}
}

func scanTeachingAssistant(row pgx.Row) (*models.TeachingAssistant, error) {
	var ta models.TeachingAssistant
	if err := row.Scan(&ta.ID, &ta.FirstName, &ta.LastName, &ta.Email, &ta.ProfessorID, &ta.CourseCode); err != nil {
		return nil, err
	}
	return &ta, nil
}

// Create creates a teaching assistant
func (r *TeachingAssistantRepository) Create(ctx context.Context, ta *models.TeachingAssistant) error {
	builder := r.sb.Insert("teaching_assistants").
		Columns("first_name", "last_name", "email", "professor_id", "course_code").
		Values(ta.FirstName, ta.LastName, ta.Email, ta.ProfessorID, ta.CourseCode).
		Suffix("RETURNING ta_id")
	return r.insertReturning(ctx, builder, "teaching assistant", &ta.ID)
}

// GetByID retrieves a teaching assistant by ID
func (r *TeachingAssistantRepository) GetByID(ctx context.Context, id int64) (*models.TeachingAssistant, error) {
	builder := r.sb.Select(teachingAssistantColumns...).
		From("teaching_assistants").
		Where(squirrel.Eq{"ta_id": id})
	return getOne(ctx, r.base, builder, scanTeachingAssistant, "teaching assistant", id)
}

// GetByProfessorID lists the assistants of a professor
func (r *TeachingAssistantRepository) GetByProfessorID(ctx context.Context, professorID int64) ([]*models.TeachingAssistant, error) {
	builder := r.sb.Select(teachingAssistantColumns...).
		From("teaching_assistants").
		Where(squirrel.Eq{"professor_id": professorID}).
		OrderBy("ta_id")
	return getMany(ctx, r.base, builder, scanTeachingAssistant, "teaching assistants")
}

// Delete deletes a teaching assistant
func (r *TeachingAssistantRepository) Delete(ctx context.Context, id int64) error {
	builder := r.sb.Delete("teaching_assistants").Where(squirrel.Eq{"ta_id": id})
	return r.exec(ctx, builder, "delete", "teaching assistant", id)
}
