package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

type PaymentMethod string

const (
	PaymentMethodZelle  PaymentMethod = "zelle"
	PaymentMethodPaypal PaymentMethod = "paypal"
	PaymentMethodMpesa  PaymentMethod = "mpesa"
	PaymentMethodCard   PaymentMethod = "card"
)

// DefaultCardInstructions is used when an event accepts cards without
// publishing its own instructions.
const DefaultCardInstructions = "Card payments are processed by the event organizer. Contact the organizer for card payment details."

// PaymentMethods lists the supported methods in display order.
var PaymentMethods = []PaymentMethod{
	PaymentMethodZelle,
	PaymentMethodPaypal,
	PaymentMethodMpesa,
	PaymentMethodCard,
}

// ParsePaymentMethod trims and lower-cases raw before matching it against the
// supported methods.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range PaymentMethods {
		if m == known {
			return m, nil
		}
	}
	if m == "" {
		return "", fmt.Errorf("%w: payment_method is required", ErrUnsupportedMethod)
	}
	return "", fmt.Errorf("%w: %q (supported: zelle, paypal, mpesa, card)", ErrUnsupportedMethod, raw)
}

// Destination resolves where a vendor pays for the event when using m.
func (m PaymentMethod) Destination(e Event) (string, error) {
	var dest string
	switch m {
	case PaymentMethodMpesa:
		dest = e.MpesaNumber
	case PaymentMethodPaypal:
		dest = e.PaypalAccount
	case PaymentMethodZelle:
		dest = e.ZelleAccount
	case PaymentMethodCard:
		if strings.TrimSpace(e.CardInstructions) == "" {
			return DefaultCardInstructions, nil
		}
		return strings.TrimSpace(e.CardInstructions), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, string(m))
	}
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return "", fmt.Errorf("%w: %s is not configured for this event", ErrDestinationNotConfigured, m)
	}
	return dest, nil
}

// Payment is the fee owed for an approved application.
type Payment struct {
	ID            int64
	VendorID      int64
	ApplicationID int64
	Amount        decimal.Decimal
	Currency      string
	Method        PaymentMethod
	TransactionID string
	PayTo         string
	Notes         string
	Status        PaymentStatus
	PaymentDate   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
