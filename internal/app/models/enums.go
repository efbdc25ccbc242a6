package models

// Gender is the closed set accepted by students.gender
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is one of the declared values
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// AttendanceStatus is the closed set accepted by attendance.status
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Valid reports whether s is one of the declared values
func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// FeeStatus is the closed set accepted by fees.status
type FeeStatus string

const (
	FeePaid    FeeStatus = "Paid"
	FeePending FeeStatus = "Pending"
	FeeOverdue FeeStatus = "Overdue"
)

// Valid reports whether s is one of the declared values
func (s FeeStatus) Valid() bool {
	switch s {
	case FeePaid, FeePending, FeeOverdue:
		return true
	default:
		return false
	}
}

// Role is the closed set accepted by user_accounts.role
type Role string

const (
	RoleStudent   Role = "Student"
	RoleProfessor Role = "Professor"
	RoleAdmin     Role = "Admin"
)

// Valid reports whether r is one of the declared values
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleAdmin:
		return true
	default:
		return false
	}
}

// LetterGrade is the closed set accepted by grades.grade
type LetterGrade string

const (
	GradeAPlus  LetterGrade = "A+"
	GradeA      LetterGrade = "A"
	GradeAMinus LetterGrade = "A-"
	GradeBPlus  LetterGrade = "B+"
	GradeB      LetterGrade = "B"
	GradeBMinus LetterGrade = "B-"
	GradeCPlus  LetterGrade = "C+"
	GradeC      LetterGrade = "C"
	GradeCMinus LetterGrade = "C-"
	GradeD      LetterGrade = "D"
	GradeF      LetterGrade = "F"
)

// LetterGrades lists every accepted grade, best first
var LetterGrades = []LetterGrade{
	GradeAPlus, GradeA, GradeAMinus,
	GradeBPlus, GradeB, GradeBMinus,
	GradeCPlus, GradeC, GradeCMinus,
	GradeD, GradeF,
}

// Valid reports whether g is one of the declared values
func (g LetterGrade) Valid() bool {
	for _, v := range LetterGrades {
		if g == v {
			return true
		}
	}
	return false
}
