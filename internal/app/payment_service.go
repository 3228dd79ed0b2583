package app

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Natili254/Eveflow/internal/access"
	"github.com/Natili254/Eveflow/internal/clock"
	"github.com/Natili254/Eveflow/internal/domain"
	"github.com/Natili254/Eveflow/internal/metrics"
)

type PaymentRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetPaymentForUpdate(ctx context.Context, paymentID int64) (domain.Payment, error)
	GetApplication(ctx context.Context, applicationID int64) (domain.Application, error)
	GetEvent(ctx context.Context, eventID int64) (domain.Event, error)
	CompletePayment(ctx context.Context, payment domain.Payment) error
	ListPaymentsByVendor(ctx context.Context, vendorID int64) ([]domain.Payment, error)
}

type PaymentService struct {
	repo   PaymentRepository
	policy Authorizer
	clock  clock.Clock
	newRef func() string
	logger logrus.FieldLogger
}

type PaymentServiceOption func(*PaymentService)

// WithTransactionRefs overrides how missing transaction ids are generated.
func WithTransactionRefs(fn func() string) PaymentServiceOption {
	return func(s *PaymentService) {
		if fn != nil {
			s.newRef = fn
		}
	}
}

func WithPaymentLogger(logger logrus.FieldLogger) PaymentServiceOption {
	return func(s *PaymentService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewPaymentService(repo PaymentRepository, policy Authorizer, clk clock.Clock, opts ...PaymentServiceOption) *PaymentService {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	svc := &PaymentService{
		repo:   repo,
		policy: policy,
		clock:  clk,
		newRef: NewTransactionRef,
		logger: discard,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ListPayments returns the actor's payments, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, actor domain.Actor) ([]domain.Payment, error) {
	if err := s.policy.Check(actor, access.Resource{Kind: access.KindPayment, Action: access.ActionList}); err != nil {
		return nil, err
	}
	return s.repo.ListPaymentsByVendor(ctx, actor.ID)
}

type PayInput struct {
	PaymentID     int64
	Method        string
	Currency      string
	TransactionID string
	Notes         string
}

// Pay settles a pending payment exactly once. The payment row stays locked
// from the first read to the completed write, so concurrent calls for the
// same payment see the winner's result and fail with
// ErrPaymentAlreadyCompleted.
func (s *PaymentService) Pay(ctx context.Context, actor domain.Actor, in PayInput) (domain.Payment, error) {
	result, err := s.pay(ctx, actor, in)
	if err != nil {
		metrics.RecordSettlementRejection(string(domain.KindOf(err)))
		return domain.Payment{}, err
	}

	metrics.RecordSettlement(string(result.Method), result.Currency)
	s.logger.WithFields(logrus.Fields{
		"payment_id": result.ID,
		"vendor_id":  result.VendorID,
		"method":     result.Method,
		"currency":   result.Currency,
	}).Info("payment settled")
	return result, nil
}

func (s *PaymentService) pay(ctx context.Context, actor domain.Actor, in PayInput) (domain.Payment, error) {
	if err := s.policy.Check(actor, access.Resource{Kind: access.KindPayment, Action: access.ActionPay}); err != nil {
		return domain.Payment{}, err
	}

	now := s.clock.Now()
	var result domain.Payment

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		payment, err := s.repo.GetPaymentForUpdate(txCtx, in.PaymentID)
		if err != nil {
			return err
		}
		if err := s.policy.Check(actor, access.Resource{
			Kind:    access.KindPayment,
			Action:  access.ActionPay,
			OwnerID: payment.VendorID,
		}); err != nil {
			return err
		}

		application, err := s.repo.GetApplication(txCtx, payment.ApplicationID)
		if err != nil {
			if errors.Is(err, domain.ErrApplicationNotFound) {
				return domain.ErrApplicationNotApproved
			}
			return err
		}
		if application.Status != domain.ApplicationStatusApproved {
			return domain.ErrApplicationNotApproved
		}

		if payment.Status == domain.PaymentStatusCompleted {
			return domain.ErrPaymentAlreadyCompleted
		}

		method, err := domain.ParsePaymentMethod(in.Method)
		if err != nil {
			return err
		}

		event, err := s.repo.GetEvent(txCtx, application.EventID)
		if err != nil {
			return err
		}
		currency, err := event.ResolveCurrency(in.Currency)
		if err != nil {
			return err
		}
		payTo, err := method.Destination(event)
		if err != nil {
			return err
		}

		txID := strings.TrimSpace(in.TransactionID)
		if txID == "" {
			txID = s.newRef()
		}

		payment.Method = method
		payment.TransactionID = txID
		payment.Notes = in.Notes
		payment.Currency = currency
		payment.PayTo = payTo
		payment.Status = domain.PaymentStatusCompleted
		payment.PaymentDate = &now
		payment.UpdatedAt = now

		if err := s.repo.CompletePayment(txCtx, payment); err != nil {
			return err
		}
		result = payment
		return nil
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return result, nil
}
