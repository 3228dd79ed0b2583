package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Natili254/Eveflow/internal/domain"
	"github.com/Natili254/Eveflow/internal/testutil"
)

func TestApplicationRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	repo := NewApplicationRepository(pool)

	t.Run("ListAvailableEvents orders by date and flags applications", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		vendorID := testutil.InsertUser(t, ctx, pool, "vendor@example.com", domain.RoleVendor)

		now := time.Now().UTC()
		later := testutil.InsertEvent(t, ctx, pool, domain.Event{Name: "Later", EventDate: now.Add(48 * time.Hour)})
		sooner := testutil.InsertEvent(t, ctx, pool, domain.Event{Name: "Sooner", EventDate: now.Add(24 * time.Hour), Status: domain.EventStatusOngoing})
		testutil.InsertEvent(t, ctx, pool, domain.Event{Name: "Cancelled", Status: domain.EventStatusCancelled})
		testutil.InsertApplication(t, ctx, pool, vendorID, later, domain.ApplicationStatusWithdrawn)

		events, err := repo.ListAvailableEvents(ctx, vendorID)
		if err != nil {
			t.Fatalf("list events: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].ID != sooner || events[0].HasApplied {
			t.Fatalf("unexpected first event: %+v", events[0])
		}
		if events[1].ID != later || !events[1].HasApplied {
			t.Fatalf("unexpected second event: %+v", events[1])
		}
	})

	t.Run("GetEvent reads payment settings", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, domain.Event{
			Name:            "Market",
			VendorFee:       decimal.RequireFromString("49.99"),
			DefaultCurrency: "USD",
			CurrencyOptions: "USD,KES",
			MpesaNumber:     "254700000000",
		})

		event, err := repo.GetEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("get event: %v", err)
		}
		if !event.VendorFee.Equal(decimal.RequireFromString("49.99")) {
			t.Fatalf("expected fee 49.99, got %s", event.VendorFee)
		}
		if event.MpesaNumber != "254700000000" || event.PaypalAccount != "" {
			t.Fatalf("unexpected payment settings: %+v", event)
		}

		if _, err := repo.GetEvent(ctx, eventID+100); !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("CreateApplication enforces one application per event", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		vendorID := testutil.InsertUser(t, ctx, pool, "vendor@example.com", domain.RoleVendor)
		eventID := testutil.InsertEvent(t, ctx, pool, domain.Event{Name: "Market", VendorFee: decimal.NewFromInt(50)})
		now := time.Now().UTC().Truncate(time.Microsecond)

		app := domain.Application{
			VendorID:       vendorID,
			EventID:        eventID,
			ProductService: "Coffee cart",
			Status:         domain.ApplicationStatusPending,
			AppliedAt:      now,
			UpdatedAt:      now,
		}
		id, err := repo.CreateApplication(ctx, app)
		if err != nil {
			t.Fatalf("create application: %v", err)
		}

		found, err := repo.FindApplication(ctx, vendorID, eventID)
		if err != nil {
			t.Fatalf("find application: %v", err)
		}
		if found == nil || found.ID != id || found.EventName != "Market" || !found.VendorFee.Equal(decimal.NewFromInt(50)) {
			t.Fatalf("unexpected application: %+v", found)
		}

		if _, err := repo.CreateApplication(ctx, app); !errors.Is(err, domain.ErrAlreadyApplied) {
			t.Fatalf("expected ErrAlreadyApplied, got %v", err)
		}

		app.EventID = eventID + 100
		if _, err := repo.CreateApplication(ctx, app); !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}

		app.EventID = eventID
		app.VendorID = vendorID + 100
		if _, err := repo.CreateApplication(ctx, app); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated for unknown vendor, got %v", err)
		}

		missing, err := repo.FindApplication(ctx, vendorID, eventID+100)
		if err != nil || missing != nil {
			t.Fatalf("expected nil application, got %+v, %v", missing, err)
		}
	})

	t.Run("UpdateApplication persists inside a transaction", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		vendorID := testutil.InsertUser(t, ctx, pool, "vendor@example.com", domain.RoleVendor)
		eventID := testutil.InsertEvent(t, ctx, pool, domain.Event{Name: "Market"})
		appID := testutil.InsertApplication(t, ctx, pool, vendorID, eventID, domain.ApplicationStatusPending)

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			app, err := repo.GetApplicationForUpdate(txCtx, appID)
			if err != nil {
				return err
			}
			app.Status = domain.ApplicationStatusWithdrawn
			app.UpdatedAt = time.Now().UTC()
			return repo.UpdateApplication(txCtx, app)
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}

		apps, err := repo.ListApplicationsByVendor(ctx, vendorID)
		if err != nil {
			t.Fatalf("list applications: %v", err)
		}
		if len(apps) != 1 || apps[0].Status != domain.ApplicationStatusWithdrawn {
			t.Fatalf("unexpected applications: %+v", apps)
		}

		if _, err := repo.GetApplicationForUpdate(ctx, appID+100); !errors.Is(err, domain.ErrApplicationNotFound) {
			t.Fatalf("expected ErrApplicationNotFound, got %v", err)
		}
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		vendorID := testutil.InsertUser(t, ctx, pool, "vendor@example.com", domain.RoleVendor)
		eventID := testutil.InsertEvent(t, ctx, pool, domain.Event{Name: "Market"})
		appID := testutil.InsertApplication(t, ctx, pool, vendorID, eventID, domain.ApplicationStatusPending)
		boom := errors.New("boom")

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			app, err := repo.GetApplicationForUpdate(txCtx, appID)
			if err != nil {
				return err
			}
			app.ProductService = "Changed"
			if err := repo.UpdateApplication(txCtx, app); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		found, err := repo.FindApplication(ctx, vendorID, eventID)
		if err != nil {
			t.Fatalf("find application: %v", err)
		}
		if found.ProductService != "Coffee cart" {
			t.Fatalf("expected rollback, got %q", found.ProductService)
		}
	})
}
