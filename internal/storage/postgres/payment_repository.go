package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Natili254/Eveflow/internal/domain"
)

const paymentColumns = `
id, vendor_id, application_id, amount, currency,
COALESCE(payment_method, ''), COALESCE(transaction_id, ''), COALESCE(pay_to, ''), notes,
status, payment_date, created_at, updated_at`

type PaymentRepository struct {
	executor
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{executor{pool: pool}}
}

func (r *PaymentRepository) GetPaymentForUpdate(ctx context.Context, paymentID int64) (domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`

	p, err := scanPayment(r.queryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Payment{}, domain.ErrPaymentNotFound
		}
		return domain.Payment{}, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) GetApplication(ctx context.Context, applicationID int64) (domain.Application, error) {
	return r.getApplication(ctx, applicationID)
}

func (r *PaymentRepository) GetEvent(ctx context.Context, eventID int64) (domain.Event, error) {
	return r.getEvent(ctx, eventID)
}

// CompletePayment writes the settlement. The status guard makes the
// pending to completed transition happen at most once.
func (r *PaymentRepository) CompletePayment(ctx context.Context, payment domain.Payment) error {
	const stmt = `
UPDATE payments
SET payment_method = $2, transaction_id = $3, notes = $4, currency = $5, pay_to = $6,
	status = 'completed', payment_date = $7, updated_at = $8
WHERE id = $1 AND status = 'pending'`

	tag, err := r.exec(ctx, stmt,
		payment.ID,
		string(payment.Method),
		payment.TransactionID,
		payment.Notes,
		payment.Currency,
		payment.PayTo,
		payment.PaymentDate,
		payment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTransactionIDTaken
		}
		return fmt.Errorf("complete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentAlreadyCompleted
	}
	return nil
}

func (r *PaymentRepository) ListPaymentsByVendor(ctx context.Context, vendorID int64) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE vendor_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate payments: %w", rows.Err())
	}
	return payments, nil
}

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var (
		p              domain.Payment
		method, status string
	)
	err := row.Scan(
		&p.ID, &p.VendorID, &p.ApplicationID, &p.Amount, &p.Currency,
		&method, &p.TransactionID, &p.PayTo, &p.Notes,
		&status, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Payment{}, err
	}
	p.Method = domain.PaymentMethod(method)
	p.Status = domain.PaymentStatus(status)
	return p, nil
}
