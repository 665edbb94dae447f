package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

type StripeProvider struct {
	api        *client.API
	currency   string
	successURL string
	cancelURL  string
}

// NewStripeProvider builds a provider that redirects back to clientDomain
func NewStripeProvider(secretKey, clientDomain, currency string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)

	domain := strings.TrimRight(clientDomain, "/")
	return &StripeProvider{
		api:        api,
		currency:   strings.ToLower(currency),
		successURL: domain + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  domain + "/dashboard/my-orders",
	}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.MealName),
					},
					UnitAmount: stripe.Int64(req.UnitAmount),
				},
				Quantity: stripe.Int64(req.Quantity),
			},
		},
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
	}
	params.Context = ctx
	params.AddMetadata(MetadataOrderID, req.OrderID)
	params.AddMetadata(MetadataMealID, req.MealID)

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return fromStripe(s), nil
}

func (p *StripeProvider) GetSession(ctx context.Context, id string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := p.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}
	return fromStripe(s), nil
}

func fromStripe(s *stripe.CheckoutSession) *Session {
	session := &Session{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	// Unexpanded payment intents still carry their id.
	if s.PaymentIntent != nil {
		session.TransactionID = s.PaymentIntent.ID
	}
	return session
}
