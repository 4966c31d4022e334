package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/sefazor/stoicaf-backend/internal/metrics"
	"github.com/sefazor/stoicaf-backend/pkg/newsletter"
	"go.uber.org/zap"
)

const (
	SubscribedMessage       = "Thanks for subscribing! Check your email for confirmation."
	SubscribePendingMessage = "Thanks for subscribing! (newsletter integration pending)"
	subscribeRetryMessage   = "Something went wrong. Please try again."
)

type Subscriber interface {
	Configured() bool
	Subscribe(ctx context.Context, email string) error
}

type NewsletterService struct {
	subscriber Subscriber
	logger     *zap.Logger
}

func NewNewsletterService(subscriber Subscriber, logger *zap.Logger) *NewsletterService {
	return &NewsletterService{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Subscribe returns the message to show the visitor. Unconfigured
// deployments accept the address and only log it.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (string, error) {
	if !s.subscriber.Configured() {
		metrics.NewsletterSubscriptions.WithLabelValues("pending").Inc()
		s.logger.Info("newsletter not configured, subscription skipped")
		return SubscribePendingMessage, nil
	}

	err := s.subscriber.Subscribe(ctx, email)
	if err == nil {
		metrics.NewsletterSubscriptions.WithLabelValues("subscribed").Inc()
		return SubscribedMessage, nil
	}

	metrics.NewsletterSubscriptions.WithLabelValues("error").Inc()
	s.logger.Warn("newsletter subscription failed", zap.Error(err))

	var apiErr *newsletter.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" &&
		(apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusUnprocessableEntity) {
		return "", &ValidationError{Message: apiErr.Message}
	}
	return "", &ProviderError{Provider: "convertkit", Message: subscribeRetryMessage, Err: err}
}
