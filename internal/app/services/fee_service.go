package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
	"github.com/yigit/campusrecords/internal/pkg/helpers"
	"github.com/yigit/campusrecords/internal/pkg/logger"
	"github.com/yigit/campusrecords/internal/pkg/validation"
)

// applyEscalation turns a Pending fee whose due date has passed into Overdue.
// Paid and Overdue fees are left alone. It reports whether it changed the status.
func applyEscalation(fee *models.Fee, today time.Time) bool {
	if fee.Status != models.FeePending {
		return false
	}
	if !helpers.TruncateDate(fee.DueDate).Before(today) {
		return false
	}
	fee.Status = models.FeeOverdue
	return true
}

// FeeService handles fees. Escalation to Overdue happens on every update and
// never on insert, so a fee can read as Pending past its due date until its
// next write or an EscalateOverdueFees sweep.
type FeeService struct {
	store repositories.Store
	clock Clock
}

// NewFeeService creates a new fee service
func NewFeeService(store repositories.Store, clock Clock) *FeeService {
	return &FeeService{store: store, clock: clock}
}

// Today is the date escalation compares due dates against
func (s *FeeService) Today() time.Time {
	return s.clock.Today()
}

func normalizeFee(fee *models.Fee) {
	fee.DueDate = helpers.TruncateDate(fee.DueDate)
	if fee.PaymentDate != nil {
		d := helpers.TruncateDate(*fee.PaymentDate)
		fee.PaymentDate = &d
	}
}

// CreateFee raises a fee. An empty status defaults to Pending.
func (s *FeeService) CreateFee(ctx context.Context, fee *models.Fee) error {
	if fee == nil {
		return apperrors.NewBadRequestError("fee is required")
	}
	if fee.Status == "" {
		fee.Status = models.FeePending
	}
	if err := validation.Struct(fee); err != nil {
		return err
	}
	normalizeFee(fee)

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return repos.Fees.Create(ctx, fee)
	})
}

// GetFee retrieves a fee by ID
func (s *FeeService) GetFee(ctx context.Context, id int64) (*models.Fee, error) {
	var fee *models.Fee
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		fee, err = repos.Fees.GetByID(ctx, id)
		return err
	})
	return fee, err
}

// FeesForStudent lists the fees of a student
func (s *FeeService) FeesForStudent(ctx context.Context, studentID int64) ([]*models.Fee, error) {
	var fees []*models.Fee
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		fees, err = repos.Fees.GetByStudentID(ctx, studentID)
		return err
	})
	return fees, err
}

// UpdateFee writes a fee, escalating it to Overdue when it is Pending past its
// due date. fee reflects the stored row afterwards.
func (s *FeeService) UpdateFee(ctx context.Context, fee *models.Fee) error {
	if fee == nil {
		return apperrors.NewBadRequestError("fee is required")
	}
	if err := validation.Struct(fee); err != nil {
		return err
	}
	normalizeFee(fee)

	return s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		return s.update(ctx, repos, fee)
	})
}

func (s *FeeService) update(ctx context.Context, repos *repositories.Repositories, fee *models.Fee) error {
	if applyEscalation(fee, s.clock.Today()) {
		logger.Info().Int64("feeID", fee.ID).Time("dueDate", fee.DueDate).Msg("Fee escalated to Overdue")
	}
	return repos.Fees.Update(ctx, fee)
}

// MarkFeePaid settles a fee. A zero paidOn means today.
func (s *FeeService) MarkFeePaid(ctx context.Context, feeID int64, paidOn time.Time) (*models.Fee, error) {
	if paidOn.IsZero() {
		paidOn = s.clock.Today()
	} else {
		paidOn = helpers.TruncateDate(paidOn)
	}

	var fee *models.Fee
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		fee, err = repos.Fees.GetByID(ctx, feeID)
		if err != nil {
			return err
		}
		fee.Status = models.FeePaid
		fee.PaymentDate = &paidOn
		return s.update(ctx, repos, fee)
	})
	if err != nil {
		return nil, err
	}
	return fee, nil
}

// EscalateOverdueFees rewrites every Pending fee due before asOf so the
// escalation rule runs on it. A zero asOf means today; a future asOf is rejected.
func (s *FeeService) EscalateOverdueFees(ctx context.Context, asOf time.Time) (SweepResult, error) {
	result := SweepResult{RunID: RunIDFrom(ctx)}

	today := s.clock.Today()
	if asOf.IsZero() {
		asOf = today
	} else {
		asOf = helpers.TruncateDate(asOf)
	}
	if asOf.After(today) {
		return result, apperrors.NewBadRequestError(
			fmt.Sprintf("as-of date %s is after today (%s)", helpers.FormatDate(asOf), helpers.FormatDate(today)))
	}

	lgr := logger.WithFields(map[string]interface{}{
		"runID": result.RunID.String(),
		"asOf":  helpers.FormatDate(asOf),
	})

	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		fees, err := repos.Fees.ListPendingDueBefore(ctx, asOf)
		if err != nil {
			return err
		}
		for _, fee := range fees {
			result.Scanned++
			if err := s.update(ctx, repos, fee); err != nil {
				return err
			}
			if fee.Status == models.FeeOverdue {
				result.Affected++
			}
		}
		return nil
	})
	if err != nil {
		return SweepResult{RunID: result.RunID}, err
	}

	lgr.Info().
		Int("scanned", result.Scanned).
		Int("escalated", result.Affected).
		Msg("Overdue fee sweep finished")
	return result, nil
}
