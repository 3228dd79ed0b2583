package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Natili254/Eveflow/internal/domain"
)

const (
	codeMethodNotAllowed          = "method_not_allowed"
	codeNotFound                  = "not_found"
	codeInvalidRequestBody        = "invalid_request_body"
	codeMissingRequiredField      = "missing_required_field"
	codeUnauthenticated           = "unauthenticated"
	codeForbidden                 = "forbidden"
	codeRateLimited               = "rate_limited"
	codeProductServiceRequired    = "product_service_required"
	codeUnsupportedPaymentMethod  = "unsupported_payment_method"
	codeCurrencyNotAllowed        = "currency_not_allowed"
	codeDestinationNotConfigured  = "payment_destination_not_configured"
	codeEventNotFound             = "event_not_found"
	codeApplicationNotFound       = "application_not_found"
	codePaymentNotFound           = "payment_not_found"
	codeApplicationNotPending     = "application_not_pending"
	codeApplicationNotApproved    = "application_not_approved"
	codeAlreadyApplied            = "already_applied"
	codePaymentAlreadyCompleted   = "payment_already_completed"
	codeTransactionIDAlreadyInUse = "transaction_id_taken"
	codeInternalError             = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

var serviceErrors = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrUnauthenticated, http.StatusUnauthorized, codeUnauthenticated},
	{domain.ErrAccessDenied, http.StatusForbidden, codeForbidden},
	{domain.ErrNotOwner, http.StatusForbidden, codeForbidden},
	{domain.ErrInvalidID, http.StatusNotFound, codeNotFound},
	{domain.ErrInvalidRequest, http.StatusBadRequest, codeInvalidRequestBody},
	{domain.ErrEventIDRequired, http.StatusBadRequest, codeMissingRequiredField},
	{domain.ErrProductServiceRequired, http.StatusBadRequest, codeProductServiceRequired},
	{domain.ErrUnsupportedMethod, http.StatusBadRequest, codeUnsupportedPaymentMethod},
	{domain.ErrCurrencyNotAllowed, http.StatusBadRequest, codeCurrencyNotAllowed},
	{domain.ErrDestinationNotConfigured, http.StatusBadRequest, codeDestinationNotConfigured},
	{domain.ErrEventNotFound, http.StatusNotFound, codeEventNotFound},
	{domain.ErrApplicationNotFound, http.StatusNotFound, codeApplicationNotFound},
	{domain.ErrPaymentNotFound, http.StatusNotFound, codePaymentNotFound},
	{domain.ErrApplicationNotPending, http.StatusConflict, codeApplicationNotPending},
	{domain.ErrApplicationNotApproved, http.StatusConflict, codeApplicationNotApproved},
	{domain.ErrAlreadyApplied, http.StatusConflict, codeAlreadyApplied},
	{domain.ErrPaymentAlreadyCompleted, http.StatusConflict, codePaymentAlreadyCompleted},
	{domain.ErrTransactionIDTaken, http.StatusConflict, codeTransactionIDAlreadyInUse},
}

// writeServiceError maps a service error to its HTTP status and code.
// Anything outside the domain taxonomy is logged and reported as 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, se := range serviceErrors {
		if errors.Is(err, se.err) {
			writeError(w, se.status, se.code, err.Error())
			return
		}
	}

	loggerFrom(r.Context()).WithError(err).Error("request failed")
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
