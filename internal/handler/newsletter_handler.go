package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/stoicaf-backend/internal/models"
	"github.com/sefazor/stoicaf-backend/internal/service"
	"github.com/sefazor/stoicaf-backend/pkg/utils"
)

type NewsletterHandler struct {
	newsletterService *service.NewsletterService
	validator         *utils.Validator
}

func NewNewsletterHandler(newsletterService *service.NewsletterService, validator *utils.Validator) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterService: newsletterService,
		validator:         validator,
	}
}

func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req models.SubscribeRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Please enter a valid email address"))
	}

	msg, err := h.newsletterService.Subscribe(c.UserContext(), req.Email)
	if err != nil {
		return writeServiceError(c, err, fiber.StatusBadGateway)
	}

	return c.JSON(models.MessageResponse(msg))
}
