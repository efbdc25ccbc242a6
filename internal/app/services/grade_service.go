package services

import (
	"context"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/logger"
	"github.com/yigit/campusrecords/internal/pkg/validation"
)

// recomputeCredits overwrites total_credits with the credit sum over the
// student's grade rows. It never increments, so it is safe to run after any
// insert, update or delete touching those rows.
func recomputeCredits(ctx context.Context, repos *repositories.Repositories, studentID int64) (int, error) {
	total, err := repos.Grades.SumCredits(ctx, studentID)
	if err != nil {
		return 0, err
	}
	if err := repos.Students.SetTotalCredits(ctx, studentID, total); err != nil {
		return 0, err
	}
	logger.Debug().Int64("studentID", studentID).Int("totalCredits", total).Msg("Total credits recomputed")
	return total, nil
}

// GradeService handles grade rows and keeps total_credits in step with them
type GradeService struct {
	store repositories.Store
}

// NewGradeService creates a new grade service
func NewGradeService(store repositories.Store) *GradeService {
	return &GradeService{store: store}
}

// RecordGrade enrolls a student in a course, with or without a letter grade yet
func (s *GradeService) RecordGrade(ctx context.Context, grade *models.Grade) error {
	if grade == nil {
		return apperrors.NewBadRequestError("grade is required")
	}
	if err := validation.Struct(grade); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if err := repos.Grades.Create(ctx, grade); err != nil {
			return err
		}
		_, err := recomputeCredits(ctx, repos, grade.StudentID)
		return err
	})
}

// GetGrade retrieves one grade row
func (s *GradeService) GetGrade(ctx context.Context, studentID int64, courseCode string) (*models.Grade, error) {
	var grade *models.Grade
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		grade, err = repos.Grades.Get(ctx, studentID, courseCode)
		return err
	})
	return grade, err
}

// GradesForStudent lists the grade rows of a student
func (s *GradeService) GradesForStudent(ctx context.Context, studentID int64) ([]*models.Grade, error) {
	var grades []*models.Grade
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		grades, err = repos.Grades.GetByStudentID(ctx, studentID)
		return err
	})
	return grades, err
}

// GradesForCourse lists the grade rows of a course
func (s *GradeService) GradesForCourse(ctx context.Context, courseCode string) ([]*models.Grade, error) {
	var grades []*models.Grade
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		grades, err = repos.Grades.GetByCourseCode(ctx, courseCode)
		return err
	})
	return grades, err
}

// UpdateGrade changes semester or letter grade of an existing row
func (s *GradeService) UpdateGrade(ctx context.Context, grade *models.Grade) error {
	if grade == nil {
		return apperrors.NewBadRequestError("grade is required")
	}
	if err := validation.Struct(grade); err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if err := repos.Grades.Update(ctx, grade); err != nil {
			return err
		}
		_, err := recomputeCredits(ctx, repos, grade.StudentID)
		return err
	})
}

// RemoveGrade drops a grade row and the credits it contributed
func (s *GradeService) RemoveGrade(ctx context.Context, studentID int64, courseCode string) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if err := repos.Grades.Delete(ctx, studentID, courseCode); err != nil {
			return err
		}
		_, err := recomputeCredits(ctx, repos, studentID)
		return err
	})
}

// RecomputeCredits recomputes and returns the total credits of one student
func (s *GradeService) RecomputeCredits(ctx context.Context, studentID int64) (int, error) {
	var total int
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := repos.Students.GetByID(ctx, studentID); err != nil {
			return err
		}
		var err error
		total, err = recomputeCredits(ctx, repos, studentID)
		return err
	})
	return total, err
}

// RecomputeAllCredits repairs total_credits for every student. Affected counts
// the students whose stored value was wrong.
func (s *GradeService) RecomputeAllCredits(ctx context.Context) (SweepResult, error) {
	result := SweepResult{RunID: RunIDFrom(ctx)}
	lgr := logger.WithField("runID", result.RunID.String())
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		students, err := repos.Students.GetAll(ctx)
		if err != nil {
			return err
		}
		for _, student := range students {
			result.Scanned++
			total, err := repos.Grades.SumCredits(ctx, student.ID)
			if err != nil {
				return err
			}
			if total == student.TotalCredits {
				continue
			}
			if err := repos.Students.SetTotalCredits(ctx, student.ID, total); err != nil {
				return err
			}
			result.Affected++
			lgr.Info().
				Int64("studentID", student.ID).
				Int("from", student.TotalCredits).
				Int("to", total).
				Msg("Repaired total credits")
		}
		return nil
	})
	if err != nil {
		return SweepResult{RunID: result.RunID}, err
	}
	return result, nil
}
