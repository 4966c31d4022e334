package handler

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/stoicaf-backend/internal/models"
	"github.com/sefazor/stoicaf-backend/internal/service"
	"github.com/sefazor/stoicaf-backend/pkg/utils"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"
)

type EventVerifier interface {
	ConstructEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

type PaymentHandler struct {
	checkoutService *service.CheckoutService
	verifier        EventVerifier
	validator       *utils.Validator
	logger          *zap.Logger
}

func NewPaymentHandler(checkoutService *service.CheckoutService, verifier EventVerifier, validator *utils.Validator, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		checkoutService: checkoutService,
		verifier:        verifier,
		validator:       validator,
		logger:          logger,
	}
}

// CreateCheckoutSession is mounted for every method so the method check runs
// before anything touches the body.
func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(models.ErrorResponse("Method not allowed"))
	}

	// An empty body is an empty request; the price fallback decides.
	var req models.CheckoutRequest
	if body := c.Body(); len(bytes.TrimSpace(body)) > 0 {
		if err := c.App().Config().JSONDecoder(body, &req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
		}
	}

	priceID, err := h.checkoutService.ResolvePriceID(req.PriceID)
	if err != nil {
		return writeServiceError(c, err, fiber.StatusInternalServerError)
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	resp, err := h.checkoutService.CreateCheckoutSession(c.UserContext(), priceID, req)
	if err != nil {
		return writeServiceError(c, err, fiber.StatusInternalServerError)
	}

	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *PaymentHandler) GetSessionStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if !strings.HasPrefix(id, "cs_") {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid session ID"))
	}

	status, err := h.checkoutService.GetSessionStatus(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err, fiber.StatusBadGateway)
	}

	return c.JSON(status)
}

func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := h.verifier.ConstructEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("webhook signature rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid webhook signature"))
	}

	h.checkoutService.HandleWebhookEvent(event)
	return c.JSON(models.MessageResponse("received"))
}
