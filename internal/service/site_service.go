package service

import (
	"strings"

	"github.com/sefazor/stoicaf-backend/internal/models"
	"github.com/sefazor/stoicaf-backend/pkg/checkout"
	"go.uber.org/zap"
)

const DefaultTheme = "light"

var themes = map[string]bool{
	"light": true,
	"dark":  true,
}

// SiteService exposes the public, browser-safe part of the configuration.
type SiteService struct {
	siteConfig models.SiteConfig
}

func NewSiteService(publishableKey, defaultPriceID, theme, checkoutMode string, logger *zap.Logger) *SiteService {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !themes[theme] {
		logger.Warn("unknown landing theme, falling back", zap.String("theme", theme), zap.String("fallback", DefaultTheme))
		theme = DefaultTheme
	}

	mode, err := checkout.ParseMode(checkoutMode)
	if err != nil {
		logger.Warn("unknown checkout mode, falling back", zap.String("mode", checkoutMode), zap.Stringer("fallback", checkout.EmbeddedServerFetch))
		mode = checkout.EmbeddedServerFetch
	}

	return &SiteService{
		siteConfig: models.SiteConfig{
			PublishableKey: publishableKey,
			DefaultPriceID: defaultPriceID,
			Theme:          theme,
			CheckoutMode:   mode.String(),
		},
	}
}

func (s *SiteService) GetSiteConfig() models.SiteConfig {
	return s.siteConfig
}
