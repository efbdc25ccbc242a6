package memory

import (
	"context"
	"math"
	"sort"

	"github.com/yigit/campusrecords/internal/app/models"
)

// reportRepo computes the four views from the tables the same way the SQL
// definitions join them.
type reportRepo struct{ s *Store }

func (r *reportRepo) profile(s models.Student) *models.StudentProfile {
	t := r.s.data
	p := &models.StudentProfile{
		StudentID:    s.ID,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Email:        s.Email,
		TotalCredits: s.TotalCredits,
	}
	if s.DepartmentID != nil {
		if d, ok := t.departments[*s.DepartmentID]; ok {
			p.DepartmentName = &d.Name
		}
	}
	if a, ok := t.addresses[s.ID]; ok {
		p.Street, p.City, p.State = &a.Street, &a.City, &a.State
		p.PostalCode, p.Country = &a.PostalCode, &a.Country
	}
	return p
}

func (r *reportRepo) StudentProfiles(_ context.Context) ([]*models.StudentProfile, error) {
	out := []*models.StudentProfile{}
	for _, s := range r.s.data.students {
		out = append(out, r.profile(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, nil
}

func (r *reportRepo) StudentProfile(_ context.Context, studentID int64) (*models.StudentProfile, error) {
	s, ok := r.s.data.students[studentID]
	if !ok {
		return nil, notFound("student", studentID)
	}
	return r.profile(s), nil
}

func (r *reportRepo) professorName(id *int64) *string {
	if id == nil {
		return nil
	}
	p, ok := r.s.data.professors[*id]
	if !ok {
		return nil
	}
	name := p.FullName()
	return &name
}

func (r *reportRepo) CourseEnrollment(_ context.Context) ([]*models.CourseEnrollment, error) {
	t := r.s.data
	out := []*models.CourseEnrollment{}
	for k, g := range t.grades {
		s, sok := t.students[k.studentID]
		c, cok := t.courses[k.courseCode]
		if !sok || !cok {
			continue
		}
		out = append(out, &models.CourseEnrollment{
			CourseCode:    c.Code,
			CourseName:    c.Name,
			ProfessorName: r.professorName(c.ProfessorID),
			StudentID:     s.ID,
			StudentName:   s.FullName(),
			Semester:      g.Semester,
			Grade:         clonePtr(g.Grade),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CourseCode != out[j].CourseCode {
			return out[i].CourseCode < out[j].CourseCode
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out, nil
}

func (r *reportRepo) AttendanceReport(_ context.Context) ([]*models.AttendanceReport, error) {
	t := r.s.data
	groups := map[gradeKey]*models.AttendanceReport{}
	for k, a := range t.attendance {
		s, sok := t.students[k.studentID]
		c, cok := t.courses[k.courseCode]
		if !sok || !cok {
			continue
		}
		gk := gradeKey{k.studentID, k.courseCode}
		row, ok := groups[gk]
		if !ok {
			row = &models.AttendanceReport{
				StudentID:   s.ID,
				StudentName: s.FullName(),
				CourseCode:  c.Code,
				CourseName:  c.Name,
			}
			groups[gk] = row
		}
		row.TotalSessions++
		if a.Status == models.AttendancePresent {
			row.PresentCount++
		}
	}

	out := make([]*models.AttendanceReport, 0, len(groups))
	for _, row := range groups {
		row.AttendancePercentage = AttendancePercentage(row.PresentCount, row.TotalSessions)
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].CourseCode < out[j].CourseCode
	})
	return out, nil
}

// AttendancePercentage is 100*present/total rounded to two decimals, 0 for no sessions
func AttendancePercentage(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(10000*float64(present)/float64(total)) / 100
}

func (r *reportRepo) ProfessorCourses(_ context.Context) ([]*models.ProfessorCourse, error) {
	t := r.s.data
	out := []*models.ProfessorCourse{}
	for _, p := range t.professors {
		base := models.ProfessorCourse{
			ProfessorID:   p.ID,
			ProfessorName: p.FullName(),
		}
		if p.DepartmentID != nil {
			if d, ok := t.departments[*p.DepartmentID]; ok {
				name := d.Name
				base.DepartmentName = &name
			}
		}

		matched := false
		for _, c := range t.courses {
			if c.ProfessorID == nil || *c.ProfessorID != p.ID {
				continue
			}
			matched = true
			row := base
			code, name, credits := c.Code, c.Name, c.Credits
			row.CourseCode, row.CourseName, row.Credits = &code, &name, &credits
			out = append(out, &row)
		}
		if !matched {
			row := base
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProfessorID != out[j].ProfessorID {
			return out[i].ProfessorID < out[j].ProfessorID
		}
		return stringOrEmpty(out[i].CourseCode) < stringOrEmpty(out[j].CourseCode)
	})
	return out, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
