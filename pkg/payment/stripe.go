package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// UI modes understood by CreateCheckoutSession.
const (
	UIModeEmbedded = "embedded"
	UIModeHosted   = "hosted"
)

type CheckoutSessionParams struct {
	PriceID    string
	UIMode     string
	ReturnURL  string
	SuccessURL string
	CancelURL  string
}

type SessionStatus struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

type StripeService struct {
	sessions      session.Client
	webhookSecret string
}

func NewStripeService(secretKey, webhookSecret string) *StripeService {
	return NewStripeServiceWithBackend(secretKey, webhookSecret, NewBackend(""))
}

// NewBackend returns an API backend that never retries on its own; callers
// re-invoke the endpoint to retry. An empty url uses the Stripe API host.
func NewBackend(url string) stripe.Backend {
	cfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
	}
	if url != "" {
		cfg.URL = stripe.String(url)
	}
	return stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
}

// NewStripeServiceWithBackend lets callers point the client at a different API host.
func NewStripeServiceWithBackend(secretKey, webhookSecret string, backend stripe.Backend) *StripeService {
	return &StripeService{
		sessions:      session.Client{B: backend, Key: secretKey},
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession mints a new session for a single unit of priceID.
// Every call creates a distinct session; no idempotency key is sent.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if s.sessions.Key == "" {
		return nil, errors.New("stripe secret key is not configured")
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	switch p.UIMode {
	case UIModeHosted:
		params.UIMode = stripe.String(string(stripe.CheckoutSessionUIModeHosted))
		params.SuccessURL = stripe.String(p.SuccessURL)
		params.CancelURL = stripe.String(p.CancelURL)
	default:
		params.UIMode = stripe.String(string(stripe.CheckoutSessionUIModeEmbedded))
		params.ReturnURL = stripe.String(p.ReturnURL)
	}

	return s.sessions.New(params)
}

func (s *StripeService) GetSessionStatus(ctx context.Context, id string) (*SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := s.sessions.Get(id, params)
	if err != nil {
		return nil, err
	}

	status := &SessionStatus{
		ID:            cs.ID,
		Status:        string(cs.Status),
		PaymentStatus: string(cs.PaymentStatus),
	}
	if cs.CustomerDetails != nil {
		status.CustomerEmail = cs.CustomerDetails.Email
	}
	return status, nil
}

// ConstructEvent verifies the Stripe-Signature header against the webhook secret.
func (s *StripeService) ConstructEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	if s.webhookSecret == "" {
		return stripe.Event{}, errors.New("stripe webhook secret is not configured")
	}
	return webhook.ConstructEventWithOptions(payload, signatureHeader, s.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
}

// ErrorMessage extracts the human readable part of a Stripe error.
func ErrorMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
