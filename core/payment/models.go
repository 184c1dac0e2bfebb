package payment

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

// Payment statuses
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Payment is a financial transaction, optionally linked to a Student.
// Meta is an opaque document stored and returned as-is.
type Payment struct {
	ID         string        `json:"id" db:"id"`
	StudentID  null.String   `json:"student_id" db:"student_id"`
	Purpose    string        `json:"purpose" db:"purpose"`
	Method     string        `json:"method" db:"method"`
	Amount     float64       `json:"amount" db:"amount"`
	Reference  null.String   `json:"reference" db:"reference"`
	Status     string        `json:"status" db:"status"`
	Meta       core.Document `json:"meta" db:"meta"`
	RecordedBy string        `json:"recorded_by" db:"recorded_by"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"` // UTC
}

// NewPayment contains information needed to record a Payment.
// One of StudentID or UserEmail may link the payment to a student.
type NewPayment struct {
	StudentID string        `json:"student_id"`
	UserEmail string        `json:"user_email" validate:"omitempty,email"`
	Purpose   string        `json:"purpose" validate:"required"`
	Method    string        `json:"method" validate:"required"`
	Amount    float64       `json:"amount" validate:"required,gt=0"`
	Reference string        `json:"reference"`
	Meta      core.Document `json:"meta"`
}
