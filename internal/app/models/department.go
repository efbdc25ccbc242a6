package models

import "time"

// Department is an academic department, optionally headed by a professor
type Department struct {
	ID     int64  `json:"departmentId" db:"department_id"`
	Name   string `json:"name" db:"name" validate:"required,max=100"`
	HeadID *int64 `json:"headId,omitempty" db:"head_id"`
}

// Professor defines the professor model based on the 'professors' table
type Professor struct {
	ID           int64      `json:"professorId" db:"professor_id"`
	FirstName    string     `json:"firstName" db:"first_name" validate:"required,max=50"`
	LastName     string     `json:"lastName" db:"last_name" validate:"required,max=50"`
	Email        string     `json:"email" db:"email" validate:"required,email,max=100"`
	Phone        *string    `json:"phone,omitempty" db:"phone" validate:"omitempty,max=20"`
	DepartmentID *int64     `json:"departmentId,omitempty" db:"department_id"`
	HireDate     *time.Time `json:"hireDate,omitempty" db:"hire_date"`
}

// FullName joins first and last name
func (p *Professor) FullName() string {
	return p.FirstName + " " + p.LastName
}

// TeachingAssistant assists a professor, optionally on one course
type TeachingAssistant struct {
	ID          int64   `json:"taId" db:"ta_id"`
	FirstName   string  `json:"firstName" db:"first_name" validate:"required,max=50"`
	LastName    string  `json:"lastName" db:"last_name" validate:"required,max=50"`
	Email       string  `json:"email" db:"email" validate:"required,email,max=100"`
	ProfessorID *int64  `json:"professorId,omitempty" db:"professor_id"`
	CourseCode  *string `json:"courseCode,omitempty" db:"course_code"`
}
