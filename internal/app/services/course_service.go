package services

import (
	"context"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/logger"
	"github.com/yigit/campusrecords/internal/pkg/validation"
)

// CourseService handles courses
type CourseService struct {
	store repositories.Store
}

// NewCourseService creates a new course service
func NewCourseService(store repositories.Store) *CourseService {
	return &CourseService{store: store}
}

// CreateCourse creates a course
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if course == nil {
		return apperrors.NewBadRequestError("course is required")
	}
	if err := validation.Struct(course); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Courses.Create(ctx, course)
	})
}

// GetCourse retrieves a course by code
func (s *CourseService) GetCourse(ctx context.Context, code string) (*models.Course, error) {
	var course *models.Course
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		course, err = repos.Courses.GetByCode(ctx, code)
		return err
	})
	return course, err
}

// ListCourses retrieves all courses
func (s *CourseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		courses, err = repos.Courses.GetAll(ctx)
		return err
	})
	return courses, err
}

// UpdateCourse updates a course. A credit change is pushed to the total of
// every student graded in the course within the same transaction.
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) error {
	if course == nil {
		return apperrors.NewBadRequestError("course is required")
	}
	if err := validation.Struct(course); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		current, err := repos.Courses.GetByCode(ctx, course.Code)
		if err != nil {
			return err
		}
		if err := repos.Courses.Update(ctx, course); err != nil {
			return err
		}
		if current.Credits == course.Credits {
			return nil
		}

		grades, err := repos.Grades.GetByCourseCode(ctx, course.Code)
		if err != nil {
			return err
		}
		for _, g := range grades {
			if _, err := recomputeCredits(ctx, repos, g.StudentID); err != nil {
				return err
			}
		}
		logger.Info().
			Str("courseCode", course.Code).
			Int("from", current.Credits).
			Int("to", course.Credits).
			Int("students", len(grades)).
			Msg("Course credits changed, totals recomputed")
		return nil
	})
}

// DeleteCourse deletes a course with its grades, attendance and feedback, and
// recomputes the totals of the students who were graded in it.
func (s *CourseService) DeleteCourse(ctx context.Context, code string) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		grades, err := repos.Grades.GetByCourseCode(ctx, code)
		if err != nil {
			return err
		}
		if err := repos.Courses.Delete(ctx, code); err != nil {
			return err
		}
		for _, g := range grades {
			if _, err := recomputeCredits(ctx, repos, g.StudentID); err != nil {
				return err
			}
		}
		return nil
	})
}
