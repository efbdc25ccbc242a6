package models

import "time"

// Credit bounds enforced by courses_credits_check
const (
	MinCourseCredits = 1
	MaxCourseCredits = 10
)

// Course represents a course offered by a department.
type Course struct {
	Code         string `json:"courseCode" db:"course_code" validate:"required,max=10,coursecode"`
	Name         string `json:"courseName" db:"course_name" validate:"required,max=100"`
	Credits      int    `json:"credits" db:"credits" validate:"min=1,max=10"`
	DepartmentID *int64 `json:"departmentId,omitempty" db:"department_id"`
	ProfessorID  *int64 `json:"professorId,omitempty" db:"professor_id"`
}

// Grade is the students x courses junction row. A nil Grade means the course is in progress.
type Grade struct {
	StudentID  int64        `json:"studentId" db:"student_id" validate:"required"`
	CourseCode string       `json:"courseCode" db:"course_code" validate:"required,max=10"`
	Semester   string       `json:"semester" db:"semester" validate:"required,max=20"`
	Grade      *LetterGrade `json:"grade,omitempty" db:"grade" validate:"omitempty,oneof=A+ A A- B+ B B- C+ C C- D F"`
}

// Attendance records one student's status for one course on one day
type Attendance struct {
	StudentID  int64            `json:"studentId" db:"student_id" validate:"required"`
	CourseCode string           `json:"courseCode" db:"course_code" validate:"required,max=10"`
	Date       time.Time        `json:"date" db:"date" validate:"required"`
	Status     AttendanceStatus `json:"status" db:"status" validate:"required,oneof=Present Absent"`
}
