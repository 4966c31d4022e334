package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sefazor/stoicaf-backend/internal/models"
	"github.com/sefazor/stoicaf-backend/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

// fakeProvider mints a new secret per call and records every request.
type fakeProvider struct {
	mu     sync.Mutex
	calls  []payment.CheckoutSessionParams
	err    error
	secret string
	url    string
	status *payment.SessionStatus
}

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, p payment.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, p)
	if f.err != nil {
		return nil, f.err
	}
	n := len(f.calls)
	cs := &stripe.CheckoutSession{ID: fmt.Sprintf("cs_test_%d", n)}
	if f.secret != "" {
		cs.ClientSecret = f.secret
	} else {
		cs.ClientSecret = fmt.Sprintf("sec_%d", n)
	}
	cs.URL = f.url
	return cs, nil
}

func (f *fakeProvider) GetSessionStatus(_ context.Context, id string) (*payment.SessionStatus, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestResolvePriceID(t *testing.T) {
	withDefault := NewCheckoutService(&fakeProvider{}, "price_default", zap.NewNop())
	withoutDefault := NewCheckoutService(&fakeProvider{}, "  ", zap.NewNop())

	got, err := withDefault.ResolvePriceID("price_req")
	require.NoError(t, err)
	assert.Equal(t, "price_req", got)

	got, err = withDefault.ResolvePriceID("")
	require.NoError(t, err)
	assert.Equal(t, "price_default", got)

	_, err = withoutDefault.ResolvePriceID("   ")
	assert.ErrorIs(t, err, ErrPriceNotConfigured)
}

func TestCreateCheckoutSessionEmbeddedReturnURL(t *testing.T) {
	provider := &fakeProvider{secret: "sec_abc"}
	svc := NewCheckoutService(provider, "price_123", zap.NewNop())

	resp, err := svc.CreateCheckoutSession(context.Background(), "price_123", models.CheckoutRequest{
		SuccessURL: "https://x.test",
		CancelURL:  "https://x.test",
	})
	require.NoError(t, err)

	assert.Equal(t, "sec_abc", resp.ClientSecret)
	require.Len(t, provider.calls, 1)
	assert.Equal(t, payment.CheckoutSessionParams{
		PriceID:   "price_123",
		UIMode:    payment.UIModeEmbedded,
		ReturnURL: "https://x.test?session_id={CHECKOUT_SESSION_ID}",
	}, provider.calls[0])
}

func TestCreateCheckoutSessionHosted(t *testing.T) {
	provider := &fakeProvider{url: "https://checkout.stripe.test/c/pay/cs_test_1"}
	svc := NewCheckoutService(provider, "", zap.NewNop())

	resp, err := svc.CreateCheckoutSession(context.Background(), "price_123", models.CheckoutRequest{
		SuccessURL: "https://x.test?checkout=success",
		CancelURL:  "https://x.test?checkout=cancelled",
		UIMode:     payment.UIModeHosted,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.stripe.test/c/pay/cs_test_1", resp.URL)
	assert.Equal(t, "https://x.test?checkout=success&session_id={CHECKOUT_SESSION_ID}", provider.calls[0].SuccessURL)
	assert.Equal(t, "https://x.test?checkout=cancelled", provider.calls[0].CancelURL)
	assert.Empty(t, provider.calls[0].ReturnURL)
}

func TestCreateCheckoutSessionIsNotIdempotent(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewCheckoutService(provider, "price_123", zap.NewNop())
	req := models.CheckoutRequest{SuccessURL: "https://x.test", CancelURL: "https://x.test"}

	first, err := svc.CreateCheckoutSession(context.Background(), "price_123", req)
	require.NoError(t, err)
	second, err := svc.CreateCheckoutSession(context.Background(), "price_123", req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ClientSecret, second.ClientSecret)
	assert.Equal(t, 2, provider.callCount())
}

func TestCreateCheckoutSessionProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: &stripe.Error{Msg: "Invalid API Key provided"}}
	svc := NewCheckoutService(provider, "price_123", zap.NewNop())

	_, err := svc.CreateCheckoutSession(context.Background(), "price_123", models.CheckoutRequest{
		SuccessURL: "https://x.test",
		CancelURL:  "https://x.test",
	})

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "Invalid API Key provided", providerErr.Message)
	assert.Equal(t, 1, provider.callCount())
}

func TestCreateCheckoutSessionWithoutClientSecret(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewCheckoutService(provider, "price_123", zap.NewNop())

	// hosted session returned without a url
	_, err := svc.CreateCheckoutSession(context.Background(), "price_123", models.CheckoutRequest{
		SuccessURL: "https://x.test",
		CancelURL:  "https://x.test",
		UIMode:     payment.UIModeHosted,
	})

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "Checkout session could not be started", providerErr.Message)
}

func TestWithSessionID(t *testing.T) {
	assert.Equal(t, "https://x.test?session_id={CHECKOUT_SESSION_ID}", WithSessionID("https://x.test"))
	assert.Equal(t, "https://x.test/?checkout=success&session_id={CHECKOUT_SESSION_ID}", WithSessionID("https://x.test/?checkout=success"))
}

func TestHandleWebhookEventDoesNotPanicOnUnknownTypes(t *testing.T) {
	svc := NewCheckoutService(&fakeProvider{}, "", zap.NewNop())

	assert.NotPanics(t, func() {
		svc.HandleWebhookEvent(stripe.Event{Type: "checkout.session.completed", Data: &stripe.EventData{Object: map[string]interface{}{"id": "cs_1"}}})
		svc.HandleWebhookEvent(stripe.Event{Type: "customer.created", Data: &stripe.EventData{}})
	})
}
