//go:build wireinject

package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"github.com/sefazor/stoicaf-backend/internal/config"
	"github.com/sefazor/stoicaf-backend/internal/handler"
	"github.com/sefazor/stoicaf-backend/internal/router"
	"github.com/sefazor/stoicaf-backend/internal/service"
	"github.com/sefazor/stoicaf-backend/pkg/captcha"
	"github.com/sefazor/stoicaf-backend/pkg/email"
	"github.com/sefazor/stoicaf-backend/pkg/newsletter"
	"github.com/sefazor/stoicaf-backend/pkg/payment"
	"github.com/sefazor/stoicaf-backend/pkg/utils"
	"go.uber.org/zap"
)

func InitializeAPI(cfg *config.Config, logger *zap.Logger) *fiber.App {
	wire.Build(
		// Clients
		provideStripeService,
		provideConvertKitClient,
		provideEmailService,
		provideTurnstileVerifier,
		wire.Bind(new(service.SessionProvider), new(*payment.StripeService)),
		wire.Bind(new(handler.EventVerifier), new(*payment.StripeService)),
		wire.Bind(new(service.Subscriber), new(*newsletter.ConvertKitClient)),
		wire.Bind(new(service.ContactMailer), new(*email.EmailService)),
		wire.Bind(new(service.HumanVerifier), new(*captcha.TurnstileVerifier)),

		// Services
		provideCheckoutService,
		provideSiteService,
		service.NewNewsletterService,
		service.NewContactService,

		// Validator
		utils.NewValidator,

		// Handlers
		handler.NewPaymentHandler,
		handler.NewNewsletterHandler,
		handler.NewContactHandler,
		handler.NewSiteHandler,

		// App
		router.NewFiberApp,
	)
	return nil
}
