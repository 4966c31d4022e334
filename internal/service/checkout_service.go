package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sefazor/stoicaf-backend/internal/metrics"
	"github.com/sefazor/stoicaf-backend/internal/models"
	"github.com/sefazor/stoicaf-backend/pkg/payment"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

// SessionProvider is the slice of the Stripe client the checkout flow needs.
type SessionProvider interface {
	CreateCheckoutSession(ctx context.Context, p payment.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetSessionStatus(ctx context.Context, id string) (*payment.SessionStatus, error)
}

type CheckoutService struct {
	provider       SessionProvider
	defaultPriceID string
	logger         *zap.Logger
}

func NewCheckoutService(provider SessionProvider, defaultPriceID string, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		provider:       provider,
		defaultPriceID: strings.TrimSpace(defaultPriceID),
		logger:         logger,
	}
}

// ResolvePriceID picks the request price, falling back to the configured default.
func (s *CheckoutService) ResolvePriceID(requested string) (string, error) {
	if p := strings.TrimSpace(requested); p != "" {
		return p, nil
	}
	if s.defaultPriceID != "" {
		return s.defaultPriceID, nil
	}
	return "", ErrPriceNotConfigured
}

// CreateCheckoutSession issues exactly one session-creation call. The price
// must already be resolved.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, priceID string, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	mode := req.UIMode
	if mode == "" {
		mode = payment.UIModeEmbedded
	}

	params := payment.CheckoutSessionParams{
		PriceID: priceID,
		UIMode:  mode,
	}
	if mode == payment.UIModeHosted {
		params.SuccessURL = WithSessionID(req.SuccessURL)
		params.CancelURL = req.CancelURL
	} else {
		params.ReturnURL = WithSessionID(req.SuccessURL)
	}

	cs, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues(mode, "error").Inc()
		s.logger.Error("checkout session creation failed",
			zap.String("price_id", priceID),
			zap.String("ui_mode", mode),
			zap.Error(err),
		)
		return nil, &ProviderError{Provider: "stripe", Message: payment.ErrorMessage(err), Err: err}
	}

	resp := &models.CheckoutResponse{ClientSecret: cs.ClientSecret, URL: cs.URL}
	if (mode == payment.UIModeEmbedded && resp.ClientSecret == "") || (mode == payment.UIModeHosted && resp.URL == "") {
		metrics.CheckoutSessions.WithLabelValues(mode, "error").Inc()
		s.logger.Error("checkout session missing redirect data", zap.String("session_id", cs.ID), zap.String("ui_mode", mode))
		return nil, &ProviderError{
			Provider: "stripe",
			Message:  "Checkout session could not be started",
			Err:      errors.New("stripe returned a session without client secret or url"),
		}
	}

	metrics.CheckoutSessions.WithLabelValues(mode, "created").Inc()
	s.logger.Info("checkout session created", zap.String("session_id", cs.ID), zap.String("ui_mode", mode))
	return resp, nil
}

func (s *CheckoutService) GetSessionStatus(ctx context.Context, id string) (*payment.SessionStatus, error) {
	status, err := s.provider.GetSessionStatus(ctx, id)
	if err != nil {
		s.logger.Warn("checkout session lookup failed", zap.String("session_id", id), zap.Error(err))
		return nil, &ProviderError{Provider: "stripe", Message: payment.ErrorMessage(err), Err: err}
	}
	return status, nil
}

// HandleWebhookEvent records checkout lifecycle events. Nothing is persisted.
func (s *CheckoutService) HandleWebhookEvent(event stripe.Event) {
	switch event.Type {
	case "checkout.session.completed",
		"checkout.session.expired",
		"checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed":
		var sessionID string
		if event.Data != nil {
			sessionID, _ = event.Data.Object["id"].(string)
		}
		metrics.WebhookEvents.WithLabelValues(string(event.Type)).Inc()
		s.logger.Info("checkout webhook received",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("session_id", sessionID),
		)
	default:
		metrics.WebhookEvents.WithLabelValues("ignored").Inc()
		s.logger.Debug("webhook event ignored", zap.String("type", string(event.Type)))
	}
}

// WithSessionID appends Stripe's session id template to a return URL.
func WithSessionID(rawURL string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "session_id=" + payment.SessionIDPlaceholder
}
