package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campusrecords/internal/app/models"
	"github.com/yigit/campusrecords/internal/db"
)

var feeColumns = []string{"fee_id", "student_id", "amount", "due_date", "payment_date", "status"}

// FeeRepository handles fee rows
type FeeRepository struct {
	base
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(q db.Querier) *FeeRepository {
	return &FeeRepository{base: newBase(q)}
}

func scanFee(row pgx.Row) (*models.Fee, error) {
	var f models.Fee
	if err := row.Scan(&f.ID, &f.StudentID, &f.Amount, &f.DueDate, &f.PaymentDate, &f.Status); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a fee
func (r *FeeRepository) Create(ctx context.Context, fee *models.Fee) error {
	builder := r.sb.Insert("fees").
		Columns("student_id", "amount", "due_date", "payment_date", "status").
		Values(fee.StudentID, fee.Amount, fee.DueDate, fee.PaymentDate, fee.Status).
		Suffix("RETURNING fee_id")
	return r.insertReturning(ctx, builder, "fee", &fee.ID)
}

// GetByID retrieves a fee by ID
func (r *FeeRepository) GetByID(ctx context.Context, id int64) (*models.Fee, error) {
	builder := r.sb.Select(feeColumns...).
		From("fees").
		Where(squirrel.Eq{"fee_id": id})
	return getOne(ctx, r.base, builder, scanFee, "fee", id)
}

// GetByStudentID lists the fees of a student by due date
func (r *FeeRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Fee, error) {
	builder := r.sb.Select(feeColumns...).
		From("fees").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("due_date", "fee_id")
	return getMany(ctx, r.base, builder, scanFee, "fees")
}

// Update writes every column of a fee
func (r *FeeRepository) Update(ctx context.Context, fee *models.Fee) error {
	builder := r.sb.Update("fees").
		SetMap(map[string]interface{}{
			"student_id":   fee.StudentID,
			"amount":       fee.Amount,
			"due_date":     fee.DueDate,
			"payment_date": fee.PaymentDate,
			"status":       fee.Status,
		}).
		Where(squirrel.Eq{"fee_id": fee.ID})
	return r.exec(ctx, builder, "update", "fee", fee.ID)
}

// ListPendingDueBefore locks and returns pending fees due strictly before date
func (r *FeeRepository) ListPendingDueBefore(ctx context.Context, date time.Time) ([]*models.Fee, error) {
	builder := r.sb.Select(feeColumns...).
		From("fees").
		Where(squirrel.Eq{"status": models.FeePending}).
		Where(squirrel.Lt{"due_date": date}).
		OrderBy("fee_id").
		Suffix("FOR UPDATE")
	return getMany(ctx, r.base, builder, scanFee, "fees")
}
