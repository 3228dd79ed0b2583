package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Natili254/Eveflow/internal/app"
	"github.com/Natili254/Eveflow/internal/domain"
)

func settledPayment() domain.Payment {
	paid := time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC)
	return domain.Payment{
		ID:            9,
		VendorID:      testVendor.ID,
		ApplicationID: 42,
		Amount:        decimal.RequireFromString("49.9"),
		Currency:      "KES",
		Method:        domain.PaymentMethodMpesa,
		TransactionID: "TXN-0123456789AB",
		PayTo:         "254700000000",
		Status:        domain.PaymentStatusCompleted,
		PaymentDate:   &paid,
		CreatedAt:     paid.Add(-time.Hour),
		UpdatedAt:     paid,
	}
}

func TestHandlePay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			id:             "9",
			body:           `{"payment_method":"mpesa","currency":"kes"}`,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"transaction_id":"TXN-0123456789AB"`,
		},
		{
			name:           "non integer id",
			id:             "nine",
			body:           `{"payment_method":"card"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid json",
			id:             "9",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidRequestBody,
		},
		{
			name:           "unsupported method",
			id:             "9",
			body:           `{"payment_method":"cash"}`,
			serviceErr:     domain.ErrUnsupportedMethod,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeUnsupportedPaymentMethod,
		},
		{
			name:           "currency not allowed",
			id:             "9",
			body:           `{"payment_method":"card","currency":"EUR"}`,
			serviceErr:     domain.ErrCurrencyNotAllowed,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeCurrencyNotAllowed,
		},
		{
			name:           "destination not configured",
			id:             "9",
			body:           `{"payment_method":"zelle"}`,
			serviceErr:     domain.ErrDestinationNotConfigured,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeDestinationNotConfigured,
		},
		{
			name:           "already completed",
			id:             "9",
			body:           `{"payment_method":"card"}`,
			serviceErr:     domain.ErrPaymentAlreadyCompleted,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codePaymentAlreadyCompleted,
		},
		{
			name:           "application not approved",
			id:             "9",
			body:           `{"payment_method":"card"}`,
			serviceErr:     domain.ErrApplicationNotApproved,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeApplicationNotApproved,
		},
		{
			name:           "transaction id taken",
			id:             "9",
			body:           `{"payment_method":"card","transaction_id":"bank-1"}`,
			serviceErr:     domain.ErrTransactionIDTaken,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeTransactionIDAlreadyInUse,
		},
		{
			name:           "payment not found",
			id:             "9",
			body:           `{"payment_method":"card"}`,
			serviceErr:     domain.ErrPaymentNotFound,
			expectedStatus: http.StatusNotFound,
			expectedSubstr: codePaymentNotFound,
		},
		{
			name:           "internal error",
			id:             "9",
			body:           `{"payment_method":"card"}`,
			serviceErr:     errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubPaymentService{payment: settledPayment(), err: tt.serviceErr}
			req := withURLParam(newActorRequest(http.MethodPut, "/payments/"+tt.id+"/pay", tt.body, testVendor), "id", tt.id)
			rec := httptest.NewRecorder()

			HandlePay(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandlePay_PassesInput(t *testing.T) {
	t.Parallel()

	svc := &stubPaymentService{payment: settledPayment()}
	body := `{"payment_method":"mpesa","currency":"kes","transaction_id":" ref ","notes":"deposit"}`
	req := withURLParam(newActorRequest(http.MethodPut, "/payments/9/pay", body, testVendor), "id", "9")
	rec := httptest.NewRecorder()

	HandlePay(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	want := app.PayInput{PaymentID: 9, Method: "mpesa", Currency: "kes", TransactionID: " ref ", Notes: "deposit"}
	if svc.paid != want {
		t.Fatalf("expected input %+v, got %+v", want, svc.paid)
	}

	var resp paymentEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Payment completed successfully" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	p := resp.Payment
	if p.Amount != "49.90" || p.Currency != "KES" || p.Status != "completed" {
		t.Fatalf("unexpected payment: %+v", p)
	}
	if p.PaymentMethod == nil || *p.PaymentMethod != "mpesa" || p.PayTo == nil || *p.PayTo != "254700000000" {
		t.Fatalf("unexpected settlement fields: %+v", p)
	}
	if p.PaymentDate == nil {
		t.Fatalf("expected payment_date")
	}
}

func TestHandleListPayments(t *testing.T) {
	t.Parallel()

	pending := domain.Payment{
		ID:            10,
		VendorID:      testVendor.ID,
		ApplicationID: 43,
		Amount:        decimal.NewFromInt(20),
		Currency:      "USD",
		Status:        domain.PaymentStatusPending,
	}
	svc := &stubPaymentService{list: []domain.Payment{pending, settledPayment()}}
	rec := httptest.NewRecorder()

	HandleListPayments(svc).ServeHTTP(rec, newActorRequest(http.MethodGet, "/payments", "", testVendor))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"payment_method":null`) || !strings.Contains(body, `"pay_to":null`) {
		t.Fatalf("expected pending payment to carry null settlement fields, got %s", body)
	}

	var resp []paymentResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != 10 || resp[1].ID != 9 {
		t.Fatalf("unexpected order: %+v", resp)
	}
}

type stubPaymentService struct {
	payment domain.Payment
	list    []domain.Payment
	err     error

	paid app.PayInput
}

func (s *stubPaymentService) ListPayments(_ context.Context, _ domain.Actor) ([]domain.Payment, error) {
	return s.list, s.err
}

func (s *stubPaymentService) Pay(_ context.Context, _ domain.Actor, in app.PayInput) (domain.Payment, error) {
	s.paid = in
	return s.payment, s.err
}
