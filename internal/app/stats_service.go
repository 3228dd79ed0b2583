package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Natili254/Eveflow/internal/access"
	"github.com/Natili254/Eveflow/internal/clock"
	"github.com/Natili254/Eveflow/internal/domain"
)

type StatsRepository interface {
	CountApplicationsByStatus(ctx context.Context, vendorID int64) (map[domain.ApplicationStatus]int, error)
	SumPaymentsByStatus(ctx context.Context, vendorID int64) (map[domain.PaymentStatus]decimal.Decimal, error)
	CountUpcomingApproved(ctx context.Context, vendorID int64, now time.Time) (int, error)
}

// Dashboard summarizes a vendor's applications and payments.
type Dashboard struct {
	TotalApplications int
	Pending           int
	Approved          int
	Rejected          int
	TotalPaid         decimal.Decimal
	PendingPayments   decimal.Decimal
	UpcomingEvents    int
}

type StatsService struct {
	repo   StatsRepository
	policy Authorizer
	clock  clock.Clock
}

func NewStatsService(repo StatsRepository, policy Authorizer, clk clock.Clock) *StatsService {
	return &StatsService{
		repo:   repo,
		policy: policy,
		clock:  clk,
	}
}

func (s *StatsService) Dashboard(ctx context.Context, actor domain.Actor) (Dashboard, error) {
	if err := s.policy.Check(actor, access.Resource{Kind: access.KindDashboard, Action: access.ActionRead}); err != nil {
		return Dashboard{}, err
	}

	counts, err := s.repo.CountApplicationsByStatus(ctx, actor.ID)
	if err != nil {
		return Dashboard{}, err
	}
	sums, err := s.repo.SumPaymentsByStatus(ctx, actor.ID)
	if err != nil {
		return Dashboard{}, err
	}
	upcoming, err := s.repo.CountUpcomingApproved(ctx, actor.ID, s.clock.Now())
	if err != nil {
		return Dashboard{}, err
	}

	var total int
	for _, n := range counts {
		total += n
	}

	// Missing map keys read as zero values.
	return Dashboard{
		TotalApplications: total,
		Pending:           counts[domain.ApplicationStatusPending],
		Approved:          counts[domain.ApplicationStatusApproved],
		Rejected:          counts[domain.ApplicationStatusRejected],
		TotalPaid:         sums[domain.PaymentStatusCompleted],
		PendingPayments:   sums[domain.PaymentStatusPending],
		UpcomingEvents:    upcoming,
	}, nil
}
