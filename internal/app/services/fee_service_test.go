package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/pkg/apperrors"
)

func TestApplyEscalation(t *testing.T) {
	today := date(2024, 6, 15)

	tests := []struct {
		name    string
		status  models.FeeStatus
		due     time.Time
		want    models.FeeStatus
		changed bool
	}{
		{"pending past due", models.FeePending, date(2024, 6, 14), models.FeeOverdue, true},
		{"pending due today", models.FeePending, today, models.FeePending, false},
		{"pending due later", models.FeePending, date(2024, 7, 1), models.FeePending, false},
		{"paid past due", models.FeePaid, date(2024, 1, 1), models.FeePaid, false},
		{"already overdue", models.FeeOverdue, date(2024, 1, 1), models.FeeOverdue, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee := &models.Fee{Status: tt.status, DueDate: tt.due}
			assert.Equal(t, tt.changed, applyEscalation(fee, today))
			assert.Equal(t, tt.want, fee.Status)
		})
	}
}

func TestFeeEscalatesOnUpdateOnly(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	student := mustStudent(t, svc, "fees@x.edu")

	fee := &models.Fee{StudentID: student.ID, Amount: 500, DueDate: date(2024, 6, 1)}
	require.NoError(t, svc.Fees.CreateFee(ctx, fee))

	stored, err := svc.Fees.GetFee(ctx, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeePending, stored.Status, "insert does not escalate")

	stored.Amount = 450
	require.NoError(t, svc.Fees.UpdateFee(ctx, stored))
	assert.Equal(t, models.FeeOverdue, stored.Status)

	again, err := svc.Fees.GetFee(ctx, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeeOverdue, again.Status)
	assert.Equal(t, 450.0, again.Amount)
}

func TestUpdateBackToPendingStillEscalates(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	student := mustStudent(t, svc, "back@x.edu")

	fee := &models.Fee{StudentID: student.ID, Amount: 10, DueDate: date(2024, 5, 1), Status: models.FeePaid}
	require.NoError(t, svc.Fees.CreateFee(ctx, fee))

	fee.Status = models.FeePending
	require.NoError(t, svc.Fees.UpdateFee(ctx, fee))
	assert.Equal(t, models.FeeOverdue, fee.Status)
}

func TestMarkFeePaid(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	student := mustStudent(t, svc, "pay@x.edu")

	fee := &models.Fee{StudentID: student.ID, Amount: 100, DueDate: date(2024, 1, 1)}
	require.NoError(t, svc.Fees.CreateFee(ctx, fee))

	paid, err := svc.Fees.MarkFeePaid(ctx, fee.ID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, models.FeePaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.True(t, date(2024, 6, 15).Equal(*paid.PaymentDate))

	_, err = svc.Fees.MarkFeePaid(ctx, 999, time.Time{})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestEscalateOverdueFees(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	student := mustStudent(t, svc, "sweep@x.edu")

	fees := []*models.Fee{
		{StudentID: student.ID, Amount: 1, DueDate: date(2024, 5, 1)},
		{StudentID: student.ID, Amount: 2, DueDate: date(2024, 6, 10)},
		{StudentID: student.ID, Amount: 3, DueDate: date(2024, 6, 15)},
		{StudentID: student.ID, Amount: 4, DueDate: date(2024, 4, 1), Status: models.FeePaid},
	}
	for _, f := range fees {
		require.NoError(t, svc.Fees.CreateFee(ctx, f))
	}

	runID := uuid.New()
	result, err := svc.Fees.EscalateOverdueFees(WithRunID(ctx, runID), date(2024, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, runID, result.RunID)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Affected)

	result, err = svc.Fees.EscalateOverdueFees(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Affected)

	stored, err := svc.Fees.FeesForStudent(ctx, student.ID)
	require.NoError(t, err)
	statuses := map[float64]models.FeeStatus{}
	for _, f := range stored {
		statuses[f.Amount] = f.Status
	}
	assert.Equal(t, map[float64]models.FeeStatus{
		1: models.FeeOverdue,
		2: models.FeeOverdue,
		3: models.FeePending,
		4: models.FeePaid,
	}, statuses)
}

func TestEscalateRejectsFutureDates(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.Fees.EscalateOverdueFees(context.Background(), date(2024, 6, 16))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestFeeForUnknownStudent(t *testing.T) {
	svc := newTestServices(t)

	err := svc.Fees.CreateFee(context.Background(), &models.Fee{StudentID: 42, Amount: 1, DueDate: date(2024, 7, 1)})
	assert.ErrorIs(t, err, apperrors.ErrForeignKeyViolation)
}
