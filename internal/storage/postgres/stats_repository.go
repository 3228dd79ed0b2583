package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Natili254/Eveflow/internal/domain"
)

// StatsRepository runs the dashboard aggregates through database/sql.
type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountApplicationsByStatus(ctx context.Context, vendorID int64) (map[domain.ApplicationStatus]int, error) {
	const query = `
SELECT status, COUNT(*)
FROM vendor_applications
WHERE vendor_id = $1
GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ApplicationStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan application count: %w", err)
		}
		counts[domain.ApplicationStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate application counts: %w", err)
	}
	return counts, nil
}

func (r *StatsRepository) SumPaymentsByStatus(ctx context.Context, vendorID int64) (map[domain.PaymentStatus]decimal.Decimal, error) {
	const query = `
SELECT status, COALESCE(SUM(amount), 0)
FROM payments
WHERE vendor_id = $1
GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}
	defer rows.Close()

	sums := make(map[domain.PaymentStatus]decimal.Decimal)
	for rows.Next() {
		var (
			status string
			total  decimal.Decimal
		)
		if err := rows.Scan(&status, &total); err != nil {
			return nil, fmt.Errorf("scan payment sum: %w", err)
		}
		sums[domain.PaymentStatus(status)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment sums: %w", err)
	}
	return sums, nil
}

// CountUpcomingApproved counts approved applications whose event starts
// strictly after now.
func (r *StatsRepository) CountUpcomingApproved(ctx context.Context, vendorID int64, now time.Time) (int, error) {
	const query = `
SELECT COUNT(*)
FROM vendor_applications a
JOIN events e ON e.id = a.event_id
WHERE a.vendor_id = $1 AND a.status = 'approved' AND e.event_date > $2`

	var n int
	if err := r.db.QueryRowContext(ctx, query, vendorID, now).Scan(&n); err != nil {
		return 0, fmt.Errorf("count upcoming events: %w", err)
	}
	return n, nil
}
