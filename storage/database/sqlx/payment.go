package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/payment"
)

type paymentRepository struct {
	exec core.DBExecutor
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(exec core.DBExecutor) *paymentRepository {
	return &paymentRepository{exec: exec}
}

func (repo paymentRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo paymentRepository) CreatePayment(ctx context.Context, pmt payment.Payment, exec ...core.DBExecutor) (payment.Payment, error) {
	pmt.ID = uuid.New().String()
	_, err := repo.getExec(exec).ExecContext(ctx,
		`INSERT INTO payments (id, student_id, purpose, method, amount, reference, status, meta, recorded_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pmt.ID, pmt.StudentID, pmt.Purpose, pmt.Method, pmt.Amount, pmt.Reference, pmt.Status, pmt.Meta, pmt.RecordedBy, pmt.CreatedAt)
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "inserting payment")
	}
	return pmt, nil
}

func (repo paymentRepository) QueryAllPayments(ctx context.Context, exec ...core.DBExecutor) ([]payment.Payment, error) {
	var payments []payment.Payment
	err := repo.getExec(exec).SelectContext(ctx, &payments,
		`SELECT * FROM payments ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	return payments, nil
}
