package main

import (
	"github.com/sefazor/stoicaf-backend/internal/config"
	"github.com/sefazor/stoicaf-backend/internal/metrics"
	"github.com/sefazor/stoicaf-backend/internal/service"
	"github.com/sefazor/stoicaf-backend/pkg/captcha"
	"github.com/sefazor/stoicaf-backend/pkg/email"
	"github.com/sefazor/stoicaf-backend/pkg/newsletter"
	"github.com/sefazor/stoicaf-backend/pkg/payment"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

func provideStripeService(cfg *config.Config) *payment.StripeService {
	return payment.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
}

func provideConvertKitClient(cfg *config.Config, logger *zap.Logger) *newsletter.ConvertKitClient {
	return newsletter.NewConvertKitClient("", cfg.ConvertKit.FormID, cfg.ConvertKit.APIKey,
		func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("circuit", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerGauge(to))
		})
}

func breakerGauge(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}

func provideEmailService(cfg *config.Config, logger *zap.Logger) *email.EmailService {
	return email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.ContactInbox, logger)
}

func provideTurnstileVerifier(cfg *config.Config) *captcha.TurnstileVerifier {
	return captcha.NewTurnstileVerifier("", cfg.Captcha.TurnstileSecret)
}

func provideCheckoutService(provider service.SessionProvider, cfg *config.Config, logger *zap.Logger) *service.CheckoutService {
	return service.NewCheckoutService(provider, cfg.Stripe.DefaultPriceID, logger)
}

func provideSiteService(cfg *config.Config, logger *zap.Logger) *service.SiteService {
	return service.NewSiteService(cfg.Stripe.PublishableKey, cfg.Stripe.DefaultPriceID, cfg.Theme, cfg.CheckoutMode, logger)
}
