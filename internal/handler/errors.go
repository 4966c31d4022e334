package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/stoicaf-backend/internal/models"
	"github.com/sefazor/stoicaf-backend/internal/service"
)

// writeServiceError maps service errors onto bounded JSON error bodies.
// providerStatus is the status used for upstream failures.
func writeServiceError(c *fiber.Ctx, err error, providerStatus int) error {
	var validationErr *service.ValidationError
	var providerErr *service.ProviderError

	switch {
	case errors.Is(err, service.ErrPriceNotConfigured):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(validationErr.Message))
	case errors.As(err, &providerErr):
		return c.Status(providerStatus).JSON(models.ErrorResponse(providerErr.Message))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
	}
}
