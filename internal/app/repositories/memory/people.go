package memory

import (
	"context"

	"github.com/yigit/campusrecords/internal/app/models"
)

func cloneDepartment(d models.Department) *models.Department {
	d.HeadID = clonePtr(d.HeadID)
	return &d
}

func cloneProfessor(p models.Professor) *models.Professor {
	p.Phone = clonePtr(p.Phone)
	p.DepartmentID = clonePtr(p.DepartmentID)
	p.HireDate = clonePtr(p.HireDate)
	return &p
}

func cloneStudent(s models.Student) *models.Student {
	s.DateOfBirth = clonePtr(s.DateOfBirth)
	s.Gender = clonePtr(s.Gender)
	s.Phone = clonePtr(s.Phone)
	s.DepartmentID = clonePtr(s.DepartmentID)
	return &s
}

func cloneAddress(a models.Address) *models.Address { return &a }

func cloneContact(c models.EmergencyContact) *models.EmergencyContact { return &c }

func (t *tables) departmentRef(id *int64, constraint string) error {
	if id == nil {
		return nil
	}
	if _, ok := t.departments[*id]; !ok {
		return foreignKey(constraint)
	}
	return nil
}

func (t *tables) professorRef(id *int64, constraint string) error {
	if id == nil {
		return nil
	}
	if _, ok := t.professors[*id]; !ok {
		return foreignKey(constraint)
	}
	return nil
}

func (t *tables) studentRef(id int64, constraint string) error {
	if _, ok := t.students[id]; !ok {
		return foreignKey(constraint)
	}
	return nil
}

type departmentRepo struct{ s *Store }

func (r *departmentRepo) validate(d *models.Department) error {
	t := r.s.data
	for id, other := range t.departments {
		if id != d.ID && other.Name == d.Name {
			return duplicate("departments_name_key")
		}
	}
	return t.professorRef(d.HeadID, "departments_head_id_fkey")
}

func (r *departmentRepo) Create(_ context.Context, department *models.Department) error {
	department.ID = 0
	if err := r.validate(department); err != nil {
		return err
	}
	t := r.s.data
	department.ID = t.next("departments")
	t.departments[department.ID] = *cloneDepartment(*department)
	return nil
}

func (r *departmentRepo) GetByID(_ context.Context, id int64) (*models.Department, error) {
	d, ok := r.s.data.departments[id]
	if !ok {
		return nil, notFound("department", id)
	}
	return cloneDepartment(d), nil
}

func (r *departmentRepo) GetAll(_ context.Context) ([]*models.Department, error) {
	return list(r.s.data.departments, nil, cloneDepartment, func(a, b *models.Department) bool {
		return a.ID < b.ID
	}), nil
}

func (r *departmentRepo) Update(_ context.Context, department *models.Department) error {
	t := r.s.data
	if _, ok := t.departments[department.ID]; !ok {
		return notFound("department", department.ID)
	}
	if err := r.validate(department); err != nil {
		return err
	}
	t.departments[department.ID] = *cloneDepartment(*department)
	return nil
}

func (r *departmentRepo) Delete(_ context.Context, id int64) error {
	t := r.s.data
	if _, ok := t.departments[id]; !ok {
		return notFound("department", id)
	}
	delete(t.departments, id)

	for pid, p := range t.professors {
		if p.DepartmentID != nil && *p.DepartmentID == id {
			p.DepartmentID = nil
			t.professors[pid] = p
		}
	}
	for sid, s := range t.students {
		if s.DepartmentID != nil && *s.DepartmentID == id {
			s.DepartmentID = nil
			t.students[sid] = s
		}
	}
	for code, c := range t.courses {
		if c.DepartmentID != nil && *c.DepartmentID == id {
			c.DepartmentID = nil
			t.courses[code] = c
		}
	}
	return nil
}

type professorRepo struct{ s *Store }

func (r *professorRepo) validate(p *models.Professor) error {
	t := r.s.data
	for id, other := range t.professors {
		if id != p.ID && other.Email == p.Email {
			return duplicate("professors_email_key")
		}
	}
	return t.departmentRef(p.DepartmentID, "professors_department_id_fkey")
}

func (r *professorRepo) Create(_ context.Context, professor *models.Professor) error {
	professor.ID = 0
	if err := r.validate(professor); err != nil {
		return err
	}
	t := r.s.data
	professor.ID = t.next("professors")
	t.professors[professor.ID] = *cloneProfessor(*professor)
	return nil
}

func (r *professorRepo) GetByID(_ context.Context, id int64) (*models.Professor, error) {
	p, ok := r.s.data.professors[id]
	if !ok {
		return nil, notFound("professor", id)
	}
	return cloneProfessor(p), nil
}

func (r *professorRepo) GetAll(_ context.Context) ([]*models.Professor, error) {
	return list(r.s.data.professors, nil, cloneProfessor, func(a, b *models.Professor) bool {
		return a.ID < b.ID
	}), nil
}

func (r *professorRepo) Update(_ context.Context, professor *models.Professor) error {
	t := r.s.data
	if _, ok := t.professors[professor.ID]; !ok {
		return notFound("professor", professor.ID)
	}
	if err := r.validate(professor); err != nil {
		return err
	}
	t.professors[professor.ID] = *cloneProfessor(*professor)
	return nil
}

func (r *professorRepo) Delete(_ context.Context, id int64) error {
	t := r.s.data
	if _, ok := t.professors[id]; !ok {
		return notFound("professor", id)
	}
	delete(t.professors, id)

	refers := func(p *int64) bool { return p != nil && *p == id }
	for did, d := range t.departments {
		if refers(d.HeadID) {
			d.HeadID = nil
			t.departments[did] = d
		}
	}
	for code, c := range t.courses {
		if refers(c.ProfessorID) {
			c.ProfessorID = nil
			t.courses[code] = c
		}
	}
	for aid, a := range t.assistants {
		if refers(a.ProfessorID) {
			a.ProfessorID = nil
			t.assistants[aid] = a
		}
	}
	for uid, u := range t.accounts {
		if refers(u.ProfessorID) {
			u.ProfessorID = nil
			t.accounts[uid] = u
		}
	}
	return nil
}

type studentRepo struct{ s *Store }

func (r *studentRepo) validate(s *models.Student) error {
	t := r.s.data
	for id, other := range t.students {
		if id != s.ID && other.Email == s.Email {
			return duplicate("students_email_key")
		}
	}
	if s.Gender != nil && !s.Gender.Valid() {
		return checkFailed("students_gender_check")
	}
	if s.TotalCredits < 0 {
		return checkFailed("students_total_credits_check")
	}
	return t.departmentRef(s.DepartmentID, "students_department_id_fkey")
}

func (r *studentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = 0
	student.TotalCredits = 0
	if err := r.validate(student); err != nil {
		return err
	}
	t := r.s.data
	student.ID = t.next("students")
	t.students[student.ID] = *cloneStudent(*student)
	return nil
}

func (r *studentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := r.s.data.students[id]
	if !ok {
		return nil, notFound("student", id)
	}
	return cloneStudent(s), nil
}

func (r *studentRepo) GetAll(_ context.Context) ([]*models.Student, error) {
	return list(r.s.data.students, nil, cloneStudent, func(a, b *models.Student) bool {
		return a.ID < b.ID
	}), nil
}

func (r *studentRepo) Update(_ context.Context, student *models.Student) error {
	t := r.s.data
	current, ok := t.students[student.ID]
	if !ok {
		return notFound("student", student.ID)
	}
	row := *cloneStudent(*student)
	row.TotalCredits = current.TotalCredits
	if err := r.validate(&row); err != nil {
		return err
	}
	t.students[student.ID] = row
	return nil
}

func (r *studentRepo) Delete(_ context.Context, id int64) error {
	t := r.s.data
	if _, ok := t.students[id]; !ok {
		return notFound("student", id)
	}
	delete(t.students, id)
	delete(t.addresses, id)

	for cid, c := range t.contacts {
		if c.StudentID == id {
			delete(t.contacts, cid)
		}
	}
	for k := range t.grades {
		if k.studentID == id {
			delete(t.grades, k)
		}
	}
	for k := range t.attendance {
		if k.studentID == id {
			delete(t.attendance, k)
		}
	}
	for fid, f := range t.fees {
		if f.StudentID == id {
			delete(t.fees, fid)
		}
	}
	for iid, i := range t.issues {
		if i.StudentID == id {
			delete(t.issues, iid)
		}
	}
	for fid, f := range t.feedback {
		if f.StudentID == id {
			delete(t.feedback, fid)
		}
	}
	for uid, u := range t.accounts {
		if u.StudentID != nil && *u.StudentID == id {
			u.StudentID = nil
			t.accounts[uid] = u
		}
	}
	return nil
}

func (r *studentRepo) SetTotalCredits(_ context.Context, id int64, credits int) error {
	t := r.s.data
	s, ok := t.students[id]
	if !ok {
		return notFound("student", id)
	}
	if credits < 0 {
		return checkFailed("students_total_credits_check")
	}
	s.TotalCredits = credits
	t.students[id] = s
	return nil
}

type addressRepo struct{ s *Store }

func (r *addressRepo) Upsert(_ context.Context, address *models.Address) error {
	t := r.s.data
	if err := t.studentRef(address.StudentID, "address_student_id_fkey"); err != nil {
		return err
	}
	t.addresses[address.StudentID] = *address
	return nil
}

func (r *addressRepo) GetByStudentID(_ context.Context, studentID int64) (*models.Address, error) {
	a, ok := r.s.data.addresses[studentID]
	if !ok {
		return nil, notFound("address", studentID)
	}
	return cloneAddress(a), nil
}

func (r *addressRepo) Delete(_ context.Context, studentID int64) error {
	t := r.s.data
	if _, ok := t.addresses[studentID]; !ok {
		return notFound("address", studentID)
	}
	delete(t.addresses, studentID)
	return nil
}

type contactRepo struct{ s *Store }

func (r *contactRepo) Create(_ context.Context, contact *models.EmergencyContact) error {
	t := r.s.data
	if err := t.studentRef(contact.StudentID, "emergency_contacts_student_id_fkey"); err != nil {
		return err
	}
	contact.ID = t.next("emergency_contacts")
	t.contacts[contact.ID] = *contact
	return nil
}

func (r *contactRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.EmergencyContact, error) {
	return list(r.s.data.contacts, func(c models.EmergencyContact) bool {
		return c.StudentID == studentID
	}, cloneContact, func(a, b *models.EmergencyContact) bool {
		return a.ID < b.ID
	}), nil
}

func (r *contactRepo) Delete(_ context.Context, id int64) error {
	t := r.s.data
	if _, ok := t.contacts[id]; !ok {
		return notFound("emergency contact", id)
	}
	delete(t.contacts, id)
	return nil
}
