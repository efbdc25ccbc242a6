package models

import "time"

// Fee is a charge raised against a student
type Fee struct {
	ID          int64      `json:"feeId" db:"fee_id"`
	StudentID   int64      `json:"studentId" db:"student_id" validate:"required"`
	Amount      float64    `json:"amount" db:"amount" validate:"gte=0"`
	DueDate     time.Time  `json:"dueDate" db:"due_date" validate:"required"`
	PaymentDate *time.Time `json:"paymentDate,omitempty" db:"payment_date"`
	Status      FeeStatus  `json:"status" db:"status" validate:"required,oneof=Paid Pending Overdue"`
}
