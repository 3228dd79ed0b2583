package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Natili254/Eveflow/internal/domain"
)

// eventColumns selects an event from alias e. Optional payment settings read
// as empty strings.
const eventColumns = `
e.id, e.name, e.description, e.event_date, e.location, e.venue, e.vendor_fee, e.status,
e.default_currency, e.currency_options,
COALESCE(e.mpesa_number, ''), COALESCE(e.paypal_account, ''),
COALESCE(e.zelle_account, ''), COALESCE(e.card_instructions, '')`

func scanEvent(row pgx.Row, extra ...any) (domain.Event, error) {
	var (
		e      domain.Event
		status string
	)
	dest := []any{
		&e.ID, &e.Name, &e.Description, &e.EventDate, &e.Location, &e.Venue, &e.VendorFee, &status,
		&e.DefaultCurrency, &e.CurrencyOptions,
		&e.MpesaNumber, &e.PaypalAccount, &e.ZelleAccount, &e.CardInstructions,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Event{}, err
	}
	e.Status = domain.EventStatus(status)
	e.EventDate = e.EventDate.UTC()
	return e, nil
}

func (e executor) getEvent(ctx context.Context, eventID int64) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`

	event, err := scanEvent(e.queryRow(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// listOpenEvents returns upcoming and ongoing events ordered by date, each
// flagged with whether vendorID has an application for it.
func (e executor) listOpenEvents(ctx context.Context, vendorID int64) ([]domain.AvailableEvent, error) {
	query := `
SELECT ` + eventColumns + `,
	EXISTS (SELECT 1 FROM vendor_applications a WHERE a.event_id = e.id AND a.vendor_id = $1)
FROM events e
WHERE e.status IN ('upcoming', 'ongoing')
ORDER BY e.event_date ASC, e.id ASC`

	rows, err := e.query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []domain.AvailableEvent{}
	for rows.Next() {
		var applied bool
		event, err := scanEvent(rows, &applied)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, domain.AvailableEvent{Event: event, HasApplied: applied})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}
