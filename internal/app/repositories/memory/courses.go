package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/campusrecords/internal/app/models"
)

func cloneCourse(c models.Course) *models.Course {
	c.DepartmentID = clonePtr(c.DepartmentID)
	c.ProfessorID = clonePtr(c.ProfessorID)
	return &c
}

func cloneAssistant(a models.TeachingAssistant) *models.TeachingAssistant {
	a.ProfessorID = clonePtr(a.ProfessorID)
	a.CourseCode = clonePtr(a.CourseCode)
	return &a
}

func cloneGrade(g models.Grade) *models.Grade {
	g.Grade = clonePtr(g.Grade)
	return &g
}

func cloneAttendance(a models.Attendance) *models.Attendance { return &a }

func (t *tables) courseRef(code string, constraint string) error {
	if _, ok := t.courses[code]; !ok {
		return foreignKey(constraint)
	}
	return nil
}

type courseRepo struct{ s *Store }

func (r *courseRepo) validate(c *models.Course) error {
	t := r.s.data
	if c.Credits < models.MinCourseCredits || c.Credits > models.MaxCourseCredits {
		return checkFailed("courses_credits_check")
	}
	if err := t.departmentRef(c.DepartmentID, "courses_department_id_fkey"); err != nil {
		return err
	}
	return t.professorRef(c.ProfessorID, "courses_professor_id_fkey")
}

func (r *courseRepo) Create(_ context.Context, course *models.Course) error {
	t := r.s.data
	if _, ok := t.courses[course.Code]; ok {
		return duplicate("courses_pkey")
	}
	if err := r.validate(course); err != nil {
		return err
	}
	t.courses[course.Code] = *cloneCourse(*course)
	return nil
}

func (r *courseRepo) GetByCode(_ context.Context, code string) (*models.Course, error) {
	c, ok := r.s.data.courses[code]
	if !ok {
		return nil, notFound("course", code)
	}
	return cloneCourse(c), nil
}

func (r *courseRepo) GetAll(_ context.Context) ([]*models.Course, error) {
	return list(r.s.data.courses, nil, cloneCourse, func(a, b *models.Course) bool {
		return a.Code < b.Code
	}), nil
}

func (r *courseRepo) Update(_ context.Context, course *models.Course) error {
	t := r.s.data
	if _, ok := t.courses[course.Code]; !ok {
		return notFound("course", course.Code)
	}
	if err := r.validate(course); err != nil {
		return err
	}
	t.courses[course.Code] = *cloneCourse(*course)
	return nil
}

func (r *courseRepo) Delete(_ context.Context, code string) error {
	t := r.s.data
	if _, ok := t.courses[code]; !ok {
		return notFound("course", code)
	}
	delete(t.courses, code)

	for k := range t.grades {
		if k.courseCode == code {
			delete(t.grades, k)
		}
	}
	for k := range t.attendance {
		if k.courseCode == code {
			delete(t.attendance, k)
		}
	}
	for id, f := range t.feedback {
		if f.CourseCode == code {
			delete(t.feedback, id)
		}
	}
	for id, a := range t.assistants {
		if a.CourseCode != nil && *a.CourseCode == code {
			a.CourseCode = nil
			t.assistants[id] = a
		}
	}
	return nil
}

type assistantRepo struct{ s *Store }

func (r *assistantRepo) Create(_ context.Context, ta *models.TeachingAssistant) error {
	t := r.s.data
	for _, other := range t.assistants {
		if other.Email == ta.Email {
			return duplicate("teaching_assistants_email_key")
		}
	}
	if err := t.professorRef(ta.ProfessorID, "teaching_assistants_professor_id_fkey"); err != nil {
		return err
	}
	if ta.CourseCode != nil {
		if err := t.courseRef(*ta.CourseCode, "teaching_assistants_course_code_fkey"); err != nil {
			return err
		}
	}
	ta.ID = t.next("teaching_assistants")
	t.assistants[ta.ID] = *cloneAssistant(*ta)
	return nil
}

func (r *assistantRepo) GetByID(_ context.Context, id int64) (*models.TeachingAssistant, error) {
	a, ok := r.s.data.assistants[id]
	if !ok {
		return nil, notFound("teaching assistant", id)
	}
	return cloneAssistant(a), nil
}

func (r *assistantRepo) GetByProfessorID(_ context.Context, professorID int64) ([]*models.TeachingAssistant, error) {
	return list(r.s.data.assistants, func(a models.TeachingAssistant) bool {
		return a.ProfessorID != nil && *a.ProfessorID == professorID
	}, cloneAssistant, func(a, b *models.TeachingAssistant) bool {
		return a.ID < b.ID
	}), nil
}

func (r *assistantRepo) Delete(_ context.Context, id int64) error {
	t := r.s.data
	if _, ok := t.assistants[id]; !ok {
		return notFound("teaching assistant", id)
	}
	delete(t.assistants, id)
	return nil
}

type gradeRepo struct{ s *Store }

func gradeKeyString(studentID int64, courseCode string) string {
	return fmt.Sprintf("(%d, %s)", studentID, courseCode)
}

func validGrade(g *models.Grade) error {
	if g.Grade != nil && !g.Grade.Valid() {
		return checkFailed("grades_grade_check")
	}
	return nil
}

func (r *gradeRepo) Create(_ context.Context, grade *models.Grade) error {
	t := r.s.data
	key := gradeKey{grade.StudentID, grade.CourseCode}
	if _, ok := t.grades[key]; ok {
		return duplicate("grades_pkey")
	}
	if err := validGrade(grade); err != nil {
		return err
	}
	if err := t.studentRef(grade.StudentID, "grades_student_id_fkey"); err != nil {
		return err
	}
	if err := t.courseRef(grade.CourseCode, "grades_course_code_fkey"); err != nil {
		return err
	}
	t.grades[key] = *cloneGrade(*grade)
	return nil
}

func (r *gradeRepo) Get(_ context.Context, studentID int64, courseCode string) (*models.Grade, error) {
	g, ok := r.s.data.grades[gradeKey{studentID, courseCode}]
	if !ok {
		return nil, notFound("grade", gradeKeyString(studentID, courseCode))
	}
	return cloneGrade(g), nil
}

func (r *gradeRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.Grade, error) {
	return list(r.s.data.grades, func(g models.Grade) bool {
		return g.StudentID == studentID
	}, cloneGrade, func(a, b *models.Grade) bool {
		return a.CourseCode < b.CourseCode
	}), nil
}

func (r *gradeRepo) GetByCourseCode(_ context.Context, courseCode string) ([]*models.Grade, error) {
	return list(r.s.data.grades, func(g models.Grade) bool {
		return g.CourseCode == courseCode
	}, cloneGrade, func(a, b *models.Grade) bool {
		return a.StudentID < b.StudentID
	}), nil
}

func (r *gradeRepo) Update(_ context.Context, grade *models.Grade) error {
	t := r.s.data
	key := gradeKey{grade.StudentID, grade.CourseCode}
	if _, ok := t.grades[key]; !ok {
		return notFound("grade", gradeKeyString(grade.StudentID, grade.CourseCode))
	}
	if err := validGrade(grade); err != nil {
		return err
	}
	t.grades[key] = *cloneGrade(*grade)
	return nil
}

func (r *gradeRepo) Delete(_ context.Context, studentID int64, courseCode string) error {
	t := r.s.data
	key := gradeKey{studentID, courseCode}
	if _, ok := t.grades[key]; !ok {
		return notFound("grade", gradeKeyString(studentID, courseCode))
	}
	delete(t.grades, key)
	return nil
}

func (r *gradeRepo) SumCredits(_ context.Context, studentID int64) (int, error) {
	t := r.s.data
	total := 0
	for k := range t.grades {
		if k.studentID != studentID {
			continue
		}
		if c, ok := t.courses[k.courseCode]; ok {
			total += c.Credits
		}
	}
	return total, nil
}

type attendanceRepo struct{ s *Store }

func (r *attendanceRepo) Create(_ context.Context, attendance *models.Attendance) error {
	t := r.s.data
	key := attendanceKey{attendance.StudentID, attendance.CourseCode, dateKey(attendance.Date)}
	if _, ok := t.attendance[key]; ok {
		return duplicate("attendance_pkey")
	}
	if !attendance.Status.Valid() {
		return checkFailed("attendance_status_check")
	}
	if err := t.studentRef(attendance.StudentID, "attendance_student_id_fkey"); err != nil {
		return err
	}
	if err := t.courseRef(attendance.CourseCode, "attendance_course_code_fkey"); err != nil {
		return err
	}
	t.attendance[key] = *attendance
	return nil
}

func (r *attendanceRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.Attendance, error) {
	return list(r.s.data.attendance, func(a models.Attendance) bool {
		return a.StudentID == studentID
	}, cloneAttendance, func(a, b *models.Attendance) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.CourseCode < b.CourseCode
	}), nil
}

func (r *attendanceRepo) Delete(_ context.Context, studentID int64, courseCode string, date time.Time) error {
	t := r.s.data
	key := attendanceKey{studentID, courseCode, dateKey(date)}
	if _, ok := t.attendance[key]; !ok {
		return notFound("attendance", fmt.Sprintf("(%d, %s, %s)", studentID, courseCode, key.date))
	}
	delete(t.attendance, key)
	return nil
}
