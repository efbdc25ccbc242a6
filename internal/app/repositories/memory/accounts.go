package memory

import (
	"context"

	"github.com/yigit/campusrecords/internal/app/models"
)

func cloneAccount(u models.UserAccount) *models.UserAccount {
	u.StudentID = clonePtr(u.StudentID)
	u.ProfessorID = clonePtr(u.ProfessorID)
	return &u
}

func cloneNotification(n models.Notification) *models.Notification { return &n }

func cloneFeedback(f models.Feedback) *models.Feedback {
	f.Comments = clonePtr(f.Comments)
	return &f
}

type accountRepo struct{ s *Store }

func (r *accountRepo) Create(_ context.Context, account *models.UserAccount) error {
	t := r.s.data
	for _, other := range t.accounts {
		switch {
		case other.Username == account.Username:
			return duplicate("user_accounts_username_key")
		case account.StudentID != nil && other.StudentID != nil && *other.StudentID == *account.StudentID:
			return duplicate("user_accounts_student_id_key")
		case account.ProfessorID != nil && other.ProfessorID != nil && *other.ProfessorID == *account.ProfessorID:
			return duplicate("user_accounts_professor_id_key")
		}
	}
	if !account.Role.Valid() {
		return checkFailed("user_accounts_role_check")
	}
	if account.StudentID != nil && account.ProfessorID != nil {
		return checkFailed("user_accounts_single_link_check")
	}
	if account.StudentID != nil {
		if err := t.studentRef(*account.StudentID, "user_accounts_student_id_fkey"); err != nil {
			return err
		}
	}
	if err := t.professorRef(account.ProfessorID, "user_accounts_professor_id_fkey"); err != nil {
		return err
	}

	account.ID = t.next("user_accounts")
	account.CreatedAt = r.s.now().UTC()
	t.accounts[account.ID] = *cloneAccount(*account)
	return nil
}

func (r *accountRepo) GetByID(_ context.Context, id int64) (*models.UserAccount, error) {
	u, ok := r.s.data.accounts[id]
	if !ok {
		return nil, notFound("user account", id)
	}
	return cloneAccount(u), nil
}

func (r *accountRepo) GetByUsername(_ context.Context, username string) (*models.UserAccount, error) {
	for _, u := range r.s.data.accounts {
		if u.Username == username {
			return cloneAccount(u), nil
		}
	}
	return nil, notFound("user account", username)
}

func (r *accountRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	t := r.s.data
	u, ok := t.accounts[id]
	if !ok {
		return notFound("user account", id)
	}
	u.PasswordHash = hash
	t.accounts[id] = u
	return nil
}

func (r *accountRepo) Delete(_ context.Context, id int64) error {
	t := r.s.data
	if _, ok := t.accounts[id]; !ok {
		return notFound("user account", id)
	}
	delete(t.accounts, id)
	for nid, n := range t.notifications {
		if n.UserID == id {
			delete(t.notifications, nid)
		}
	}
	return nil
}

type notificationRepo struct{ s *Store }

func (r *notificationRepo) Create(_ context.Context, notification *models.Notification) error {
	t := r.s.data
	if _, ok := t.accounts[notification.UserID]; !ok {
		return foreignKey("notifications_user_id_fkey")
	}
	notification.ID = t.next("notifications")
	notification.CreatedAt = r.s.now().UTC()
	t.notifications[notification.ID] = *notification
	return nil
}

func (r *notificationRepo) GetByUserID(_ context.Context, userID int64) ([]*models.Notification, error) {
	return list(r.s.data.notifications, func(n models.Notification) bool {
		return n.UserID == userID
	}, cloneNotification, func(a, b *models.Notification) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}), nil
}

func (r *notificationRepo) MarkRead(_ context.Context, id int64) error {
	t := r.s.data
	n, ok := t.notifications[id]
	if !ok {
		return notFound("notification", id)
	}
	n.IsRead = true
	t.notifications[id] = n
	return nil
}

type feedbackRepo struct{ s *Store }

func (r *feedbackRepo) Create(_ context.Context, feedback *models.Feedback) error {
	t := r.s.data
	if feedback.Rating < models.MinRating || feedback.Rating > models.MaxRating {
		return checkFailed("feedback_rating_check")
	}
	if err := t.studentRef(feedback.StudentID, "feedback_student_id_fkey"); err != nil {
		return err
	}
	if err := t.courseRef(feedback.CourseCode, "feedback_course_code_fkey"); err != nil {
		return err
	}
	feedback.ID = t.next("feedback")
	feedback.SubmittedAt = r.s.now().UTC()
	t.feedback[feedback.ID] = *cloneFeedback(*feedback)
	return nil
}

func byFeedbackID(a, b *models.Feedback) bool { return a.ID < b.ID }

func (r *feedbackRepo) GetByCourseCode(_ context.Context, courseCode string) ([]*models.Feedback, error) {
	return list(r.s.data.feedback, func(f models.Feedback) bool {
		return f.CourseCode == courseCode
	}, cloneFeedback, byFeedbackID), nil
}

func (r *feedbackRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.Feedback, error) {
	return list(r.s.data.feedback, func(f models.Feedback) bool {
		return f.StudentID == studentID
	}, cloneFeedback, byFeedbackID), nil
}
