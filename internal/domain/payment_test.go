package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"card", " CARD ", "Mpesa", "paypal", "zelle"} {
		m, err := ParsePaymentMethod(raw)
		require.NoError(t, err, raw)
		assert.Contains(t, PaymentMethods, m)
	}

	for _, raw := range []string{"", "  ", "cash", "credit_card"} {
		_, err := ParsePaymentMethod(raw)
		assert.ErrorIs(t, err, ErrUnsupportedMethod, raw)
	}
}

func TestPaymentMethod_Destination(t *testing.T) {
	t.Parallel()

	event := Event{
		MpesaNumber:   "+254700000000",
		PaypalAccount: "pay@example.com",
		ZelleAccount:  " ",
	}

	dest, err := PaymentMethodMpesa.Destination(event)
	require.NoError(t, err)
	assert.Equal(t, "+254700000000", dest)

	dest, err = PaymentMethodPaypal.Destination(event)
	require.NoError(t, err)
	assert.Equal(t, "pay@example.com", dest)

	_, err = PaymentMethodZelle.Destination(event)
	assert.ErrorIs(t, err, ErrDestinationNotConfigured)

	_, err = PaymentMethodMpesa.Destination(Event{})
	assert.ErrorIs(t, err, ErrDestinationNotConfigured)

	dest, err = PaymentMethodCard.Destination(Event{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCardInstructions, dest)

	dest, err = PaymentMethodCard.Destination(Event{CardInstructions: "Pay at the gate"})
	require.NoError(t, err)
	assert.Equal(t, "Pay at the gate", dest)

	_, err = PaymentMethod("cash").Destination(event)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}
