package router

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sefazor/stoicaf-backend/internal/config"
	"github.com/sefazor/stoicaf-backend/internal/handler"
	"github.com/sefazor/stoicaf-backend/internal/middleware"
	"github.com/sefazor/stoicaf-backend/internal/models"
	"go.uber.org/zap"
)

func NewFiberApp(
	cfg *config.Config,
	logger *zap.Logger,
	paymentHandler *handler.PaymentHandler,
	newsletterHandler *handler.NewsletterHandler,
	contactHandler *handler.ContactHandler,
	siteHandler *handler.SiteHandler,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "stoicaf-backend",
		ErrorHandler: errorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return uuid.NewString()
		},
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Get("/health", siteHandler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Stripe calls the webhook from fixed hosts, keep it outside the limiter
	api.Post("/checkout/webhook", paymentHandler.HandleStripeWebhook)
	api.Get("/config", siteHandler.GetConfig)
	api.Get("/checkout/sessions/:id", paymentHandler.GetSessionStatus)

	limit := limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse("Too many requests"))
		},
	})
	api.All("/checkout", limit, paymentHandler.CreateCheckoutSession)
	api.Post("/newsletter", limit, newsletterHandler.Subscribe)
	api.Post("/contact", limit, contactHandler.Submit)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(models.ErrorResponse(msg))
}
