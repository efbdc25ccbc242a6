package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
	"github.com/yigit/campusrecords/internal/pkg/logger"
)

var studentColumns = []string{
	"student_id", "first_name", "last_name", "date_of_birth", "gender", "email", "phone",
	"enrollment_date", "department_id", "total_credits",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	base
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.Querier) *StudentRepository {
	return &StudentRepository{base: newBase(q)}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.DateOfBirth, &s.Gender, &s.Email, &s.Phone,
		&s.EnrollmentDate, &s.DepartmentID, &s.TotalCredits)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create creates a new student. total_credits starts at the column default.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	builder := r.sb.Insert("students").
		Columns("first_name", "last_name", "date_of_birth", "gender", "email", "phone", "enrollment_date", "department_id").
		Values(student.FirstName, student.LastName, student.DateOfBirth, student.Gender, student.Email, student.Phone,
			student.EnrollmentDate, student.DepartmentID).
		Suffix("RETURNING student_id, total_credits")

	query, args, err := builder.ToSql()
	if err != nil {
		return r.writeError(err, "create", "student")
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&student.ID, &student.TotalCredits); err != nil {
		return r.writeError(err, "create", "student")
	}

	logger.Info().Int64("studentID", student.ID).Str("email", student.Email).Msg("Student created successfully")
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"student_id": id})
	return getOne(ctx, r.base, builder, scanStudent, "student", id)
}

// GetAll retrieves all students
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("student_id")
	return getMany(ctx, r.base, builder, scanStudent, "students")
}

// Update updates everything but total_credits
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	builder := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"first_name":      student.FirstName,
			"last_name":       student.LastName,
			"date_of_birth":   student.DateOfBirth,
			"gender":          student.Gender,
			"email":           student.Email,
			"phone":           student.Phone,
			"enrollment_date": student.EnrollmentDate,
			"department_id":   student.DepartmentID,
		}).
		Where(squirrel.Eq{"student_id": student.ID})
	return r.exec(ctx, builder, "update", "student", student.ID)
}

// Delete deletes a student; dependent rows go with it through ON DELETE CASCADE.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	builder := r.sb.Delete("students").Where(squirrel.Eq{"student_id": id})
	if err := r.exec(ctx, builder, "delete", "student", id); err != nil {
		return err
	}
	logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}

// SetTotalCredits overwrites the derived credit total
func (r *StudentRepository) SetTotalCredits(ctx context.Context, id int64, credits int) error {
	builder := r.sb.Update("students").
		Set("total_credits", credits).
		Where(squirrel.Eq{"student_id": id})
	return r.exec(ctx, builder, "update", "student", id)
}

// AddressRepository handles the 1-1 student address
type AddressRepository struct {
	base
}

// NewAddressRepository creates a new AddressRepository
func NewAddressRepository(q db.Querier) *AddressRepository {
	return &AddressRepository{base: newBase(q)}
}

// Upsert inserts or replaces the address of a student
func (r *AddressRepository) Upsert(ctx context.Context, address *models.Address) error {
	builder := r.sb.Insert("address").
		Columns("student_id", "street", "city", "state", "postal_code", "country").
		Values(address.StudentID, address.Street, address.City, address.State, address.PostalCode, address.Country).
		Suffix(`ON CONFLICT (student_id) DO UPDATE SET street = EXCLUDED.street, city = EXCLUDED.city,
			state = EXCLUDED.state, postal_code = EXCLUDED.postal_code, country = EXCLUDED.country`)
	return r.exec(ctx, builder, "upsert", "address", address.StudentID)
}

// GetByStudentID retrieves the address of a student
func (r *AddressRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.Address, error) {
	builder := r.sb.Select("student_id", "street", "city", "state", "postal_code", "country").
		From("address").
		Where(squirrel.Eq{"student_id": studentID})
	return getOne(ctx, r.base, builder, func(row pgx.Row) (*models.Address, error) {
		var a models.Address
		if err := row.Scan(&a.StudentID, &a.Street, &a.City, &a.State, &a.PostalCode, &a.Country); err != nil {
			return nil, err
		}
		return &a, nil
	}, "address", studentID)
}

// Delete removes the address of a student
func (r *AddressRepository) Delete(ctx context.Context, studentID int64) error {
	builder := r.sb.Delete("address").Where(squirrel.Eq{"student_id": studentID})
	return r.exec(ctx, builder, "delete", "address", studentID)
}

// EmergencyContactRepository handles emergency contacts
type EmergencyContactRepository struct {
	base
}

// NewEmergencyContactRepository creates a new EmergencyContactRepository
func NewEmergencyContactRepository(q db.Querier) *EmergencyContactRepository {
	return &EmergencyContactRepository{base: newBase(q)}
}

// Create adds a contact
func (r *EmergencyContactRepository) Create(ctx context.Context, contact *models.EmergencyContact) error {
	builder := r.sb.Insert("emergency_contacts").
		Columns("student_id", "name", "relationship", "phone").
		Values(contact.StudentID, contact.Name, contact.Relationship, contact.Phone).
		Suffix("RETURNING contact_id")
	return r.insertReturning(ctx, builder, "emergency contact", &contact.ID)
}

// GetByStudentID lists the contacts of a student
func (r *EmergencyContactRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.EmergencyContact, error) {
	builder := r.sb.Select("contact_id", "student_id", "name", "relationship", "phone").
		From("emergency_contacts").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("contact_id")
	return getMany(ctx, r.base, builder, func(row pgx.Row) (*models.EmergencyContact, error) {
		var c models.EmergencyContact
		if err := row.Scan(&c.ID, &c.StudentID, &c.Name, &c.Relationship, &c.Phone); err != nil {
			return nil, err
		}
		return &c, nil
	}, "emergency contacts")
}

// Delete removes a contact
func (r *EmergencyContactRepository) Delete(ctx context.Context, id int64) error {
	builder := r.sb.Delete("emergency_contacts").Where(squirrel.Eq{"contact_id": id})
	return r.exec(ctx, builder, "delete", "emergency contact", id)
}
