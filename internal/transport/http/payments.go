package http

import (
	"context"
	"net/http"

	"github.com/Natili254/Eveflow/internal/app"
	"github.com/Natili254/Eveflow/internal/domain"
)

// PaymentService is the minimal interface needed for payment endpoints.
type PaymentService interface {
	ListPayments(ctx context.Context, actor domain.Actor) ([]domain.Payment, error)
	Pay(ctx context.Context, actor domain.Actor, in app.PayInput) (domain.Payment, error)
}

type payRequest struct {
	PaymentMethod string `json:"payment_method"`
	Currency      string `json:"currency"`
	TransactionID string `json:"transaction_id"`
	Notes         string `json:"notes"`
}

type paymentEnvelope struct {
	Message string          `json:"message"`
	Payment paymentResponse `json:"payment"`
}

func HandleListPayments(svc PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		payments, err := svc.ListPayments(r.Context(), actor)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp := make([]paymentResponse, 0, len(payments))
		for _, p := range payments {
			resp = append(resp, toPaymentResponse(p))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandlePay settles a pending payment. A repeated call answers 409 and leaves
// the first settlement in place.
func HandlePay(svc PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req payRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		payment, err := svc.Pay(r.Context(), actor, app.PayInput{
			PaymentID:     id,
			Method:        req.PaymentMethod,
			Currency:      req.Currency,
			TransactionID: req.TransactionID,
			Notes:         req.Notes,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, paymentEnvelope{
			Message: "Payment completed successfully",
			Payment: toPaymentResponse(payment),
		})
	}
}
