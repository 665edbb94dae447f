package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v81"
)

func TestNewStripeProvider_URLs(t *testing.T) {
	p := NewStripeProvider("sk_test", "https://homechef.example.com/", "USD")
	assert.Equal(t, "usd", p.currency)
	assert.Equal(t, "https://homechef.example.com/payment-success?session_id={CHECKOUT_SESSION_ID}", p.successURL)
	assert.Equal(t, "https://homechef.example.com/dashboard/my-orders", p.cancelURL)
}

func TestFromStripe(t *testing.T) {
	s := fromStripe(&stripe.CheckoutSession{
		ID:            "cs_1",
		URL:           "https://checkout.stripe.com/c/cs_1",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal:   3750,
		Currency:      stripe.CurrencyUSD,
		CustomerEmail: "a@example.com",
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"},
		Metadata:      map[string]string{MetadataOrderID: "o1"},
	})

	assert.True(t, s.Paid())
	assert.Equal(t, "pi_1", s.TransactionID)
	assert.Equal(t, "o1", s.OrderID())
	assert.Equal(t, int64(3750), s.AmountTotal)
	assert.Equal(t, "usd", s.Currency)

	unpaid := fromStripe(&stripe.CheckoutSession{ID: "cs_2", PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid})
	assert.False(t, unpaid.Paid())
	assert.Empty(t, unpaid.TransactionID)
	assert.Empty(t, unpaid.OrderID())
}
