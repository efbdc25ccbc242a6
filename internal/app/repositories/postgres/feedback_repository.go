package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
)

var feedbackColumns = []string{"feedback_id", "student_id", "course_code", "rating", "comments", "submitted_at"}

// FeedbackRepository handles course feedback
type FeedbackRepository struct {
	base
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(q db.Querier) *FeedbackRepository {
	return &FeedbackRepository{base: newBase(q)}
}

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	var f models.Feedback
	if err := row.Scan(&f.ID, &f.StudentID, &f.CourseCode, &f.Rating, &f.Comments, &f.SubmittedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a feedback row
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	query, args, err := r.sb.Insert("feedback").
		Columns("student_id", "course_code", "rating", "comments").
		Values(feedback.StudentID, feedback.CourseCode, feedback.Rating, feedback.Comments).
		Suffix("RETURNING feedback_id, submitted_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create feedback query: %w", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&feedback.ID, &feedback.SubmittedAt); err != nil {
		return r.writeError(err, "create", "feedback")
	}
	return nil
}

// GetByCourseCode lists the feedback of a course
func (r *FeedbackRepository) GetByCourseCode(ctx context.Context, courseCode string) ([]*models.Feedback, error) {
	builder := r.sb.Select(feedbackColumns...).
		From("feedback").
		Where(squirrel.Eq{"course_code": courseCode}).
		OrderBy("feedback_id")
	return getMany(ctx, r.base, builder, scanFeedback, "feedback")
}

// GetByStudentID lists the feedback a student submitted
func (r *FeedbackRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Feedback, error) {
	builder := r.sb.Select(feedbackColumns...).
		From("feedback").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("feedback_id")
	return getMany(ctx, r.base, builder, scanFeedback, "feedback")
}
