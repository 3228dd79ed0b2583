package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Natili254/Eveflow/internal/app"
	"github.com/Natili254/Eveflow/internal/domain"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a strict JSON body. It writes the 400 itself and reports
// whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return false
	}
	return true
}

// pathID parses the {id} URL parameter. Anything but a positive integer is
// reported as 404.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeServiceError(w, r, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw))
		return 0, false
	}
	return id, true
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type eventResponse struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	EventDate        time.Time   `json:"event_date"`
	Location         string      `json:"location"`
	Venue            string      `json:"venue"`
	VendorFee        json.Number `json:"vendor_fee"`
	Status           string      `json:"status"`
	DefaultCurrency  string      `json:"default_currency"`
	CurrencyOptions  []string    `json:"currency_options"`
	MpesaNumber      string      `json:"mpesa_number,omitempty"`
	PaypalAccount    string      `json:"paypal_account,omitempty"`
	ZelleAccount     string      `json:"zelle_account,omitempty"`
	CardInstructions string      `json:"card_instructions,omitempty"`
	HasApplied       bool        `json:"has_applied"`
}

func toEventResponse(e domain.AvailableEvent) eventResponse {
	return eventResponse{
		ID:               e.ID,
		Name:             e.Name,
		Description:      e.Description,
		EventDate:        e.EventDate,
		Location:         e.Location,
		Venue:            e.Venue,
		VendorFee:        money(e.VendorFee),
		Status:           string(e.Status),
		DefaultCurrency:  domain.NormalizeCurrency(e.DefaultCurrency),
		CurrencyOptions:  domain.ParseCurrencyOptions(e.CurrencyOptions, e.DefaultCurrency),
		MpesaNumber:      e.MpesaNumber,
		PaypalAccount:    e.PaypalAccount,
		ZelleAccount:     e.ZelleAccount,
		CardInstructions: e.CardInstructions,
		HasApplied:       e.HasApplied,
	}
}

type applicationResponse struct {
	ID                int64       `json:"id"`
	VendorID          int64       `json:"vendor_id"`
	EventID           int64       `json:"event_id"`
	EventName         string      `json:"event_name"`
	EventDate         time.Time   `json:"event_date"`
	VendorFee         json.Number `json:"vendor_fee"`
	ProductService    string      `json:"product_service"`
	BoothRequirements string      `json:"booth_requirements"`
	AdditionalNotes   string      `json:"additional_notes"`
	Status            string      `json:"status"`
	AdminNotes        string      `json:"admin_notes"`
	ReviewedAt        *time.Time  `json:"reviewed_at"`
	AppliedAt         time.Time   `json:"applied_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func toApplicationResponse(a domain.Application) applicationResponse {
	return applicationResponse{
		ID:                a.ID,
		VendorID:          a.VendorID,
		EventID:           a.EventID,
		EventName:         a.EventName,
		EventDate:         a.EventDate,
		VendorFee:         money(a.VendorFee),
		ProductService:    a.ProductService,
		BoothRequirements: a.BoothRequirements,
		AdditionalNotes:   a.AdditionalNotes,
		Status:            string(a.Status),
		AdminNotes:        a.AdminNotes,
		ReviewedAt:        a.ReviewedAt,
		AppliedAt:         a.AppliedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

type paymentResponse struct {
	ID            int64       `json:"id"`
	VendorID      int64       `json:"vendor_id"`
	ApplicationID int64       `json:"application_id"`
	Amount        json.Number `json:"amount"`
	Currency      string      `json:"currency"`
	PaymentMethod *string     `json:"payment_method"`
	TransactionID *string     `json:"transaction_id"`
	PayTo         *string     `json:"pay_to"`
	Notes         string      `json:"notes"`
	Status        string      `json:"status"`
	PaymentDate   *time.Time  `json:"payment_date"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func toPaymentResponse(p domain.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		VendorID:      p.VendorID,
		ApplicationID: p.ApplicationID,
		Amount:        money(p.Amount),
		Currency:      p.Currency,
		PaymentMethod: nullable(string(p.Method)),
		TransactionID: nullable(p.TransactionID),
		PayTo:         nullable(p.PayTo),
		Notes:         p.Notes,
		Status:        string(p.Status),
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type dashboardResponse struct {
	TotalApplications int         `json:"total_applications"`
	Pending           int         `json:"pending"`
	Approved          int         `json:"approved"`
	Rejected          int         `json:"rejected"`
	TotalPaid         json.Number `json:"total_paid"`
	PendingPayments   json.Number `json:"pending_payments"`
	UpcomingEvents    int         `json:"upcoming_events"`
}

func toDashboardResponse(d app.Dashboard) dashboardResponse {
	return dashboardResponse{
		TotalApplications: d.TotalApplications,
		Pending:           d.Pending,
		Approved:          d.Approved,
		Rejected:          d.Rejected,
		TotalPaid:         money(d.TotalPaid),
		PendingPayments:   money(d.PendingPayments),
		UpcomingEvents:    d.UpcomingEvents,
	}
}
