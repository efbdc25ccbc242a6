package models

import "time"

// Rating bounds enforced by feedback_rating_check
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a student's rating of a course
type Feedback struct {
	ID          int64     `json:"feedbackId" db:"feedback_id"`
	StudentID   int64     `json:"studentId" db:"student_id" validate:"required"`
	CourseCode  string    `json:"courseCode" db:"course_code" validate:"required,max=10"`
	Rating      int       `json:"rating" db:"rating" validate:"min=1,max=5"`
	Comments    *string   `json:"comments,omitempty" db:"comments"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}
