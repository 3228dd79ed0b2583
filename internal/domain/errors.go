package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrAccessDenied = errors.New("access denied")
	ErrNotOwner     = errors.New("access denied: not the owner")

	ErrInvalidID                = errors.New("invalid id")
	ErrInvalidRequest           = errors.New("invalid request")
	ErrEventIDRequired          = errors.New("event_id is required")
	ErrProductServiceRequired   = errors.New("product_service is required")
	ErrUnsupportedMethod        = errors.New("unsupported payment method")
	ErrCurrencyNotAllowed       = errors.New("currency not allowed")
	ErrDestinationNotConfigured = errors.New("payment destination not configured")

	ErrEventNotFound       = errors.New("event not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrPaymentNotFound     = errors.New("payment not found")

	ErrApplicationNotPending  = errors.New("only pending applications can be changed")
	ErrApplicationNotApproved = errors.New("payment only allowed for approved applications")

	ErrAlreadyApplied          = errors.New("already applied to this event")
	ErrPaymentAlreadyCompleted = errors.New("payment already completed")
	ErrTransactionIDTaken      = errors.New("transaction id already used")
)

// Kind groups errors into the categories callers react to.
type Kind string

const (
	KindUnknown         Kind = ""
	KindUnauthenticated Kind = "unauthenticated"
	KindAccessDenied    Kind = "access_denied"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindInvalidState    Kind = "invalid_state"
	KindConflict        Kind = "conflict"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrAccessDenied, KindAccessDenied},
	{ErrNotOwner, KindAccessDenied},
	{ErrInvalidRequest, KindValidation},
	{ErrEventIDRequired, KindValidation},
	{ErrProductServiceRequired, KindValidation},
	{ErrUnsupportedMethod, KindValidation},
	{ErrCurrencyNotAllowed, KindValidation},
	{ErrDestinationNotConfigured, KindValidation},
	{ErrEventNotFound, KindNotFound},
	{ErrApplicationNotFound, KindNotFound},
	{ErrPaymentNotFound, KindNotFound},
	{ErrInvalidID, KindNotFound},
	{ErrApplicationNotPending, KindInvalidState},
	{ErrApplicationNotApproved, KindInvalidState},
	{ErrAlreadyApplied, KindConflict},
	{ErrPaymentAlreadyCompleted, KindConflict},
	{ErrTransactionIDTaken, KindConflict},
}

// KindOf classifies err, following wrapped errors. Errors outside the
// taxonomy report KindUnknown and should be treated as internal failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}
