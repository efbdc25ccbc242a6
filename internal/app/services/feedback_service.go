package services

import (
	"context"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/validation"
)

// FeedbackService handles course feedback
type FeedbackService struct {
	store repositories.Store
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(store repositories.Store) *FeedbackService {
	return &FeedbackService{store: store}
}

// SubmitFeedback stores a rating between 1 and 5
func (s *FeedbackService) SubmitFeedback(ctx context.Context, feedback *models.Feedback) error {
	if feedback == nil {
		return apperrors.NewBadRequestError("feedback is required")
	}
	if err := validation.Struct(feedback); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Feedback.Create(ctx, feedback)
	})
}

// FeedbackForCourse lists the feedback of a course
func (s *FeedbackService) FeedbackForCourse(ctx context.Context, courseCode string) ([]*models.Feedback, error) {
	var rows []*models.Feedback
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		rows, err = repos.Feedback.GetByCourseCode(ctx, courseCode)
		return err
	})
	return rows, err
}

// FeedbackByStudent lists the feedback a student submitted
func (s *FeedbackService) FeedbackByStudent(ctx context.Context, studentID int64) ([]*models.Feedback, error) {
	var rows []*models.Feedback
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		rows, err = repos.Feedback.GetByStudentID(ctx, studentID)
		return err
	})
	return rows, err
}

// AverageRating is the mean rating of a course, 0 without feedback
func (s *FeedbackService) AverageRating(ctx context.Context, courseCode string) (float64, int, error) {
	rows, err := s.FeedbackForCourse(ctx, courseCode)
	if err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, f := range rows {
		sum += f.Rating
	}
	return float64(sum) / float64(len(rows)), len(rows), nil
}
