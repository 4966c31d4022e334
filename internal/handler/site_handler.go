package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/stoicaf-backend/internal/service"
)

type SiteHandler struct {
	siteService *service.SiteService
}

func NewSiteHandler(siteService *service.SiteService) *SiteHandler {
	return &SiteHandler{
		siteService: siteService,
	}
}

func (h *SiteHandler) GetConfig(c *fiber.Ctx) error {
	return c.JSON(h.siteService.GetSiteConfig())
}

func (h *SiteHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}
