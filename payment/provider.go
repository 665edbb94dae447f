// Package payment talks to the hosted checkout provider.
package payment

import "context"

// CheckoutRequest describes a single-line checkout. UnitAmount is in minor units.
type CheckoutRequest struct {
	OrderID       string
	MealID        string
	MealName      string
	CustomerEmail string
	UnitAmount    int64
	Quantity      int64
}

// Session is the provider's view of a checkout, which is authoritative for
// the transaction id and the amount actually charged.
type Session struct {
	ID            string
	URL           string
	TransactionID string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

const (
	StatusPaid = "paid"

	MetadataOrderID = "orderId"
	MetadataMealID  = "mealId"
)

// Paid reports whether the provider captured the payment
func (s *Session) Paid() bool {
	return s.PaymentStatus == StatusPaid
}

// OrderID returns the order reference stored in the session metadata
func (s *Session) OrderID() string {
	return s.Metadata[MetadataOrderID]
}

type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
}
