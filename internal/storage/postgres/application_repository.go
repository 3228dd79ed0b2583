package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Natili254/Eveflow/internal/domain"
)

const applicationColumns = `
a.id, a.vendor_id, a.event_id, a.product_service, a.booth_requirements, a.additional_notes,
a.status, a.admin_notes, a.reviewed_at, a.applied_at, a.updated_at,
e.name, e.event_date, e.vendor_fee`

const (
	applicationEventFKey  = "vendor_applications_event_id_fkey"
	applicationVendorFKey = "vendor_applications_vendor_id_fkey"
)

type ApplicationRepository struct {
	executor
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{executor{pool: pool}}
}

func (r *ApplicationRepository) GetEvent(ctx context.Context, eventID int64) (domain.Event, error) {
	return r.getEvent(ctx, eventID)
}

func (r *ApplicationRepository) ListAvailableEvents(ctx context.Context, vendorID int64) ([]domain.AvailableEvent, error) {
	return r.listOpenEvents(ctx, vendorID)
}

// FindApplication returns the vendor's application for the event in any
// status, or nil when there is none.
func (r *ApplicationRepository) FindApplication(ctx context.Context, vendorID, eventID int64) (*domain.Application, error) {
	query := `
SELECT ` + applicationColumns + `
FROM vendor_applications a
JOIN events e ON e.id = a.event_id
WHERE a.vendor_id = $1 AND a.event_id = $2`

	app, err := scanApplication(r.queryRow(ctx, query, vendorID, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) CreateApplication(ctx context.Context, application domain.Application) (int64, error) {
	const stmt = `
INSERT INTO vendor_applications
	(vendor_id, event_id, product_service, booth_requirements, additional_notes, status, applied_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	var id int64
	err := r.queryRow(ctx, stmt,
		application.VendorID,
		application.EventID,
		application.ProductService,
		application.BoothRequirements,
		application.AdditionalNotes,
		string(application.Status),
		application.AppliedAt,
		application.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrAlreadyApplied
		}
		if fk, ok := violatedForeignKey(err); ok {
			switch fk {
			case applicationEventFKey:
				return 0, domain.ErrEventNotFound
			case applicationVendorFKey:
				// A verified token whose subject has no user row.
				return 0, fmt.Errorf("%w: unknown user %d", domain.ErrUnauthenticated, application.VendorID)
			}
		}
		return 0, fmt.Errorf("create application: %w", err)
	}
	return id, nil
}

func (r *ApplicationRepository) GetApplicationForUpdate(ctx context.Context, applicationID int64) (domain.Application, error) {
	query := `
SELECT ` + applicationColumns + `
FROM vendor_applications a
JOIN events e ON e.id = a.event_id
WHERE a.id = $1
FOR UPDATE OF a`

	app, err := scanApplication(r.queryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Application{}, domain.ErrApplicationNotFound
		}
		return domain.Application{}, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

func (r *ApplicationRepository) UpdateApplication(ctx context.Context, application domain.Application) error {
	const stmt = `
UPDATE vendor_applications
SET product_service = $2, booth_requirements = $3, additional_notes = $4, status = $5, updated_at = $6
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		application.ID,
		application.ProductService,
		application.BoothRequirements,
		application.AdditionalNotes,
		string(application.Status),
		application.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepository) ListApplicationsByVendor(ctx context.Context, vendorID int64) ([]domain.Application, error) {
	query := `
SELECT ` + applicationColumns + `
FROM vendor_applications a
JOIN events e ON e.id = a.event_id
WHERE a.vendor_id = $1
ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate applications: %w", rows.Err())
	}
	return apps, nil
}

func (e executor) getApplication(ctx context.Context, applicationID int64) (domain.Application, error) {
	query := `
SELECT ` + applicationColumns + `
FROM vendor_applications a
JOIN events e ON e.id = a.event_id
WHERE a.id = $1`

	app, err := scanApplication(e.queryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Application{}, domain.ErrApplicationNotFound
		}
		return domain.Application{}, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

func scanApplication(row pgx.Row) (domain.Application, error) {
	var (
		a      domain.Application
		status string
	)
	err := row.Scan(
		&a.ID, &a.VendorID, &a.EventID, &a.ProductService, &a.BoothRequirements, &a.AdditionalNotes,
		&status, &a.AdminNotes, &a.ReviewedAt, &a.AppliedAt, &a.UpdatedAt,
		&a.EventName, &a.EventDate, &a.VendorFee,
	)
	if err != nil {
		return domain.Application{}, err
	}
	a.Status = domain.ApplicationStatus(status)
	return a, nil
}
