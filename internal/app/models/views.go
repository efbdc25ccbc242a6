package models

// StudentProfile is a row of the student_profile view
type StudentProfile struct {
	StudentID      int64   `json:"studentId" db:"student_id"`
	FirstName      string  `json:"firstName" db:"first_name"`
	LastName       string  `json:"lastName" db:"last_name"`
	Email          string  `json:"email" db:"email"`
	DepartmentName *string `json:"departmentName,omitempty" db:"department_name"`
	Street         *string `json:"street,omitempty" db:"street"`
	City           *string `json:"city,omitempty" db:"city"`
	State          *string `json:"state,omitempty" db:"state"`
	PostalCode     *string `json:"postalCode,omitempty" db:"postal_code"`
	Country        *string `json:"country,omitempty" db:"country"`
	TotalCredits   int     `json:"totalCredits" db:"total_credits"`
}

// CourseEnrollment is a row of the course_enrollment view, one per grade row
type CourseEnrollment struct {
	CourseCode    string       `json:"courseCode" db:"course_code"`
	CourseName    string       `json:"courseName" db:"course_name"`
	ProfessorName *string      `json:"professorName,omitempty" db:"professor_name"`
	StudentID     int64        `json:"studentId" db:"student_id"`
	StudentName   string       `json:"studentName" db:"student_name"`
	Semester      string       `json:"semester" db:"semester"`
	Grade         *LetterGrade `json:"grade,omitempty" db:"grade"`
}

// AttendanceReport is a row of the attendance_report view, one per (student, course)
type AttendanceReport struct {
	StudentID            int64   `json:"studentId" db:"student_id"`
	StudentName          string  `json:"studentName" db:"student_name"`
	CourseCode           string  `json:"courseCode" db:"course_code"`
	CourseName           string  `json:"courseName" db:"course_name"`
	TotalSessions        int     `json:"totalSessions" db:"total_sessions"`
	PresentCount         int     `json:"presentCount" db:"present_count"`
	AttendancePercentage float64 `json:"attendancePercentage" db:"attendance_percentage"`
}

// ProfessorCourse is a row of the professor_courses view. Course fields are nil
// for a professor who teaches nothing.
type ProfessorCourse struct {
	ProfessorID    int64   `json:"professorId" db:"professor_id"`
	ProfessorName  string  `json:"professorName" db:"professor_name"`
	DepartmentName *string `json:"departmentName,omitempty" db:"department_name"`
	CourseCode     *string `json:"courseCode,omitempty" db:"course_code"`
	CourseName     *string `json:"courseName,omitempty" db:"course_name"`
	Credits        *int    `json:"credits,omitempty" db:"credits"`
}
