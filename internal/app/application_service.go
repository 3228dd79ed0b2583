package app

import (
	"context"
	"strings"

	"github.com/Natili254/Eveflow/internal/access"
	"github.com/Natili254/Eveflow/internal/clock"
	"github.com/Natili254/Eveflow/internal/domain"
	"github.com/Natili254/Eveflow/internal/metrics"
)

type ApplicationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, eventID int64) (domain.Event, error)
	ListAvailableEvents(ctx context.Context, vendorID int64) ([]domain.AvailableEvent, error)
	FindApplication(ctx context.Context, vendorID, eventID int64) (*domain.Application, error)
	CreateApplication(ctx context.Context, application domain.Application) (int64, error)
	GetApplicationForUpdate(ctx context.Context, applicationID int64) (domain.Application, error)
	UpdateApplication(ctx context.Context, application domain.Application) error
	ListApplicationsByVendor(ctx context.Context, vendorID int64) ([]domain.Application, error)
}

// Authorizer makes the capability decision for an actor and resource.
type Authorizer interface {
	Check(actor domain.Actor, res access.Resource) error
}

type ApplicationService struct {
	repo   ApplicationRepository
	policy Authorizer
	clock  clock.Clock
}

func NewApplicationService(repo ApplicationRepository, policy Authorizer, clk clock.Clock) *ApplicationService {
	return &ApplicationService{
		repo:   repo,
		policy: policy,
		clock:  clk,
	}
}

// ListAvailableEvents returns upcoming and ongoing events, soonest first,
// flagged with whether the actor already applied.
func (s *ApplicationService) ListAvailableEvents(ctx context.Context, actor domain.Actor) ([]domain.AvailableEvent, error) {
	if err := s.policy.Check(actor, access.Resource{Kind: access.KindEvent, Action: access.ActionList}); err != nil {
		return nil, err
	}
	return s.repo.ListAvailableEvents(ctx, actor.ID)
}

// ListApplications returns the actor's applications, newest first.
func (s *ApplicationService) ListApplications(ctx context.Context, actor domain.Actor) ([]domain.Application, error) {
	if err := s.policy.Check(actor, access.Resource{Kind: access.KindApplication, Action: access.ActionList}); err != nil {
		return nil, err
	}
	return s.repo.ListApplicationsByVendor(ctx, actor.ID)
}

type SubmitApplicationInput struct {
	EventID           int64
	ProductService    string
	BoothRequirements string
	AdditionalNotes   string
}

func (s *ApplicationService) Submit(ctx context.Context, actor domain.Actor, in SubmitApplicationInput) (domain.Application, error) {
	if err := s.policy.Check(actor, access.Resource{Kind: access.KindApplication, Action: access.ActionCreate}); err != nil {
		return domain.Application{}, err
	}
	if in.EventID <= 0 {
		return domain.Application{}, domain.ErrEventIDRequired
	}
	productService := strings.TrimSpace(in.ProductService)
	if productService == "" {
		return domain.Application{}, domain.ErrProductServiceRequired
	}

	now := s.clock.Now()
	var result domain.Application

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEvent(txCtx, in.EventID)
		if err != nil {
			return err
		}

		// Any status blocks the pair, withdrawn included.
		existing, err := s.repo.FindApplication(txCtx, actor.ID, event.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyApplied
		}

		application := domain.Application{
			VendorID:          actor.ID,
			EventID:           event.ID,
			ProductService:    productService,
			BoothRequirements: in.BoothRequirements,
			AdditionalNotes:   in.AdditionalNotes,
			Status:            domain.ApplicationStatusPending,
			AppliedAt:         now,
			UpdatedAt:         now,
			EventName:         event.Name,
			EventDate:         event.EventDate,
			VendorFee:         event.VendorFee,
		}
		id, err := s.repo.CreateApplication(txCtx, application)
		if err != nil {
			return err
		}
		application.ID = id
		result = application
		return nil
	})
	if err != nil {
		return domain.Application{}, err
	}

	metrics.RecordApplication("submit")
	return result, nil
}

// UpdateApplicationInput carries only the fields present in the request; nil
// leaves the stored value untouched.
type UpdateApplicationInput struct {
	ProductService    *string
	BoothRequirements *string
	AdditionalNotes   *string
}

func (s *ApplicationService) Update(ctx context.Context, actor domain.Actor, applicationID int64, in UpdateApplicationInput) (domain.Application, error) {
	result, err := s.mutatePending(ctx, actor, applicationID, access.ActionUpdate, func(application *domain.Application) error {
		if in.ProductService != nil {
			productService := strings.TrimSpace(*in.ProductService)
			if productService == "" {
				return domain.ErrProductServiceRequired
			}
			application.ProductService = productService
		}
		if in.BoothRequirements != nil {
			application.BoothRequirements = *in.BoothRequirements
		}
		if in.AdditionalNotes != nil {
			application.AdditionalNotes = *in.AdditionalNotes
		}
		return nil
	})
	if err != nil {
		return domain.Application{}, err
	}

	metrics.RecordApplication("update")
	return result, nil
}

// Withdraw moves a pending application to withdrawn. The vendor cannot
// apply to the same event again afterwards.
func (s *ApplicationService) Withdraw(ctx context.Context, actor domain.Actor, applicationID int64) (domain.Application, error) {
	result, err := s.mutatePending(ctx, actor, applicationID, access.ActionWithdraw, func(application *domain.Application) error {
		application.Status = domain.ApplicationStatusWithdrawn
		return nil
	})
	if err != nil {
		return domain.Application{}, err
	}

	metrics.RecordApplication("withdraw")
	return result, nil
}

// mutatePending locks the application, checks ownership and state, applies
// change and persists it in one transaction.
func (s *ApplicationService) mutatePending(ctx context.Context, actor domain.Actor, applicationID int64, action string, change func(*domain.Application) error) (domain.Application, error) {
	if err := s.policy.Check(actor, access.Resource{Kind: access.KindApplication, Action: action}); err != nil {
		return domain.Application{}, err
	}

	now := s.clock.Now()
	var result domain.Application

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		application, err := s.repo.GetApplicationForUpdate(txCtx, applicationID)
		if err != nil {
			return err
		}
		if err := s.policy.Check(actor, access.Resource{
			Kind:    access.KindApplication,
			Action:  action,
			OwnerID: application.VendorID,
		}); err != nil {
			return err
		}
		if !application.Status.Mutable() {
			return domain.ErrApplicationNotPending
		}

		if err := change(&application); err != nil {
			return err
		}
		application.UpdatedAt = now
		if err := s.repo.UpdateApplication(txCtx, application); err != nil {
			return err
		}
		result = application
		return nil
	})
	if err != nil {
		return domain.Application{}, err
	}
	return result, nil
}
