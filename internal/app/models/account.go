package models

import "time"

// UserAccount is a login linked to a student or a professor
type UserAccount struct {
	ID           int64     `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username" validate:"required,min=3,max=50"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role" validate:"required,oneof=Student Professor Admin"`
	StudentID    *int64    `json:"studentId,omitempty" db:"student_id"`
	ProfessorID  *int64    `json:"professorId,omitempty" db:"professor_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Notification is a message addressed to an account
type Notification struct {
	ID        int64     `json:"notificationId" db:"notification_id"`
	UserID    int64     `json:"userId" db:"user_id" validate:"required"`
	Message   string    `json:"message" db:"message" validate:"required"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
