package memory

import (
	"context"
	"time"

	"github.com/yigit/campusrecords/internal/app/models"
)

func cloneFee(f models.Fee) *models.Fee {
	f.PaymentDate = clonePtr(f.PaymentDate)
	return &f
}

type feeRepo struct{ s *Store }

func (r *feeRepo) validate(f *models.Fee) error {
	if f.Amount < 0 {
		return checkFailed("fees_amount_check")
	}
	if !f.Status.Valid() {
		return checkFailed("fees_status_check")
	}
	return r.s.data.studentRef(f.StudentID, "fees_student_id_fkey")
}

func (r *feeRepo) Create(_ context.Context, fee *models.Fee) error {
	if err := r.validate(fee); err != nil {
		return err
	}
	t := r.s.data
	fee.ID = t.next("fees")
	t.fees[fee.ID] = *cloneFee(*fee)
	return nil
}

func (r *feeRepo) GetByID(_ context.Context, id int64) (*models.Fee, error) {
	f, ok := r.s.data.fees[id]
	if !ok {
		return nil, notFound("fee", id)
	}
	return cloneFee(f), nil
}

func byDueDate(a, b *models.Fee) bool {
	if !a.DueDate.Equal(b.DueDate) {
		return a.DueDate.Before(b.DueDate)
	}
	return a.ID < b.ID
}

func (r *feeRepo) GetByStudentID(_ context.Context, studentID int64) ([]*models.Fee, error) {
	return list(r.s.data.fees, func(f models.Fee) bool {
		return f.StudentID == studentID
	}, cloneFee, byDueDate), nil
}

func (r *feeRepo) Update(_ context.Context, fee *models.Fee) error {
	t := r.s.data
	if _, ok := t.fees[fee.ID]; !ok {
		return notFound("fee", fee.ID)
	}
	if err := r.validate(fee); err != nil {
		return err
	}
	t.fees[fee.ID] = *cloneFee(*fee)
	return nil
}

func (r *feeRepo) ListPendingDueBefore(_ context.Context, date time.Time) ([]*models.Fee, error) {
	cutoff := dateKey(date)
	return list(r.s.data.fees, func(f models.Fee) bool {
		return f.Status == models.FeePending && dateKey(f.DueDate) < cutoff
	}, cloneFee, func(a, b *models.Fee) bool {
		return a.ID < b.ID
	}), nil
}
