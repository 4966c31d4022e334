package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/stoicaf-backend/internal/models"
	"github.com/sefazor/stoicaf-backend/internal/service"
	"github.com/sefazor/stoicaf-backend/pkg/utils"
)

type ContactHandler struct {
	contactService *service.ContactService
	validator      *utils.Validator
}

func NewContactHandler(contactService *service.ContactService, validator *utils.Validator) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validator:      validator,
	}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req models.ContactRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	msg, err := h.contactService.Submit(c.UserContext(), req, c.IP())
	if err != nil {
		return writeServiceError(c, err, fiber.StatusBadGateway)
	}

	return c.JSON(models.MessageResponse(msg))
}
