package config

import (
	"os"
	"strconv"
	"strings"
)

type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	DefaultPriceID string
	WebhookSecret  string
}

type ConvertKitConfig struct {
	FormID string
	APIKey string
}

type CaptchaConfig struct {
	TurnstileSecret string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
	ContactInbox string
}

type Config struct {
	Env          string
	Port         string
	LogLevel     string
	AllowOrigins string
	RateLimitMax int
	Theme        string
	CheckoutMode string

	Stripe     StripeConfig
	ConvertKit ConvertKitConfig
	Email      EmailConfig
	Captcha    CaptchaConfig
}

func LoadConfig() *Config {
	cfg := &Config{
		Env:          getEnv("APP_ENV", "production"),
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		RateLimitMax: getEnvInt("RATE_LIMIT_MAX", 20),
		Theme:        getEnv("LANDING_THEME", "light"),
		CheckoutMode: getEnv("CHECKOUT_MODE", "embedded-server"),
	}

	// Stripe config
	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.PublishableKey = os.Getenv("STRIPE_PUBLISHABLE_KEY")
	cfg.Stripe.DefaultPriceID = strings.TrimSpace(os.Getenv("STRIPE_PRICE_PAPERBACK"))
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")

	// ConvertKit config
	cfg.ConvertKit.FormID = os.Getenv("CONVERTKIT_FORM_ID")
	cfg.ConvertKit.APIKey = os.Getenv("CONVERTKIT_API_KEY")

	// Resend config
	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "Stoic AF")
	cfg.Email.ContactInbox = os.Getenv("CONTACT_INBOX")

	// Turnstile config
	cfg.Captcha.TurnstileSecret = os.Getenv("CF_TURNSTILE_SECRET_KEY")

	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
