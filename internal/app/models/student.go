package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID             int64      `json:"studentId" db:"student_id"`
	FirstName      string     `json:"firstName" db:"first_name" validate:"required,max=50"`
	LastName       string     `json:"lastName" db:"last_name" validate:"required,max=50"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender         *Gender    `json:"gender,omitempty" db:"gender" validate:"omitempty,oneof=Male Female Other"`
	Email          string     `json:"email" db:"email" validate:"required,email,max=100"`
	Phone          *string    `json:"phone,omitempty" db:"phone" validate:"omitempty,max=20"`
	EnrollmentDate time.Time  `json:"enrollmentDate" db:"enrollment_date"`
	DepartmentID   *int64     `json:"departmentId,omitempty" db:"department_id"`
	// TotalCredits is derived from grades; writes to it go through the credit recompute only
	TotalCredits int `json:"totalCredits" db:"total_credits"`
}

// FullName joins first and last name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Address is the 1-1 postal address of a student
type Address struct {
	StudentID  int64  `json:"studentId" db:"student_id" validate:"required"`
	Street     string `json:"street" db:"street" validate:"required,max=100"`
	City       string `json:"city" db:"city" validate:"required,max=50"`
	State      string `json:"state" db:"state" validate:"max=50"`
	PostalCode string `json:"postalCode" db:"postal_code" validate:"max=20"`
	Country    string `json:"country" db:"country" validate:"required,max=50"`
}

// EmergencyContact is a person to reach on behalf of a student
type EmergencyContact struct {
	ID           int64  `json:"contactId" db:"contact_id"`
	StudentID    int64  `json:"studentId" db:"student_id" validate:"required"`
	Name         string `json:"name" db:"name" validate:"required,max=100"`
	Relationship string `json:"relationship" db:"relationship" validate:"required,max=50"`
	Phone        string `json:"phone" db:"phone" validate:"required,max=20"`
}
