package models

// CheckoutRequest is the body of POST /api/checkout.
type CheckoutRequest struct {
	PriceID    string `json:"priceId"`
	SuccessURL string `json:"successUrl" validate:"required,return_url"`
	CancelURL  string `json:"cancelUrl" validate:"required,return_url"`
	UIMode     string `json:"uiMode,omitempty" validate:"omitempty,oneof=embedded hosted"`
}

type CheckoutResponse struct {
	ClientSecret string `json:"clientSecret,omitempty"`
	URL          string `json:"url,omitempty"`
}

// SiteConfig is the public configuration handed to the browser.
type SiteConfig struct {
	PublishableKey string `json:"publishableKey"`
	DefaultPriceID string `json:"defaultPriceId,omitempty"`
	Theme          string `json:"theme"`
	CheckoutMode   string `json:"checkoutMode"`
}
