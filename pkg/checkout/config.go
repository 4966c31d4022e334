package checkout

import (
	"fmt"
	"os"
	"strings"
)

// Mode selects how a checkout attempt is presented and who supplies the price.
type Mode int

const (
	// Redirect navigates the browser to a provider-hosted page.
	Redirect Mode = iota
	// EmbeddedClientFetch mounts the embedded form; the client names the price.
	EmbeddedClientFetch
	// EmbeddedServerFetch mounts the embedded form; the server picks its default price.
	EmbeddedServerFetch
)

func (m Mode) String() string {
	switch m {
	case Redirect:
		return "redirect"
	case EmbeddedClientFetch:
		return "embedded-client"
	case EmbeddedServerFetch:
		return "embedded-server"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Embedded reports whether the mode mounts a widget instead of navigating.
func (m Mode) Embedded() bool {
	return m == EmbeddedClientFetch || m == EmbeddedServerFetch
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "redirect":
		return Redirect, nil
	case "embedded-client":
		return EmbeddedClientFetch, nil
	case "", "embedded-server":
		return EmbeddedServerFetch, nil
	default:
		return 0, fmt.Errorf("unknown checkout mode %q", s)
	}
}

// ClientConfig is everything the checkout client needs, passed in explicitly.
type ClientConfig struct {
	PublishableKey string
	APIBaseURL     string
	// Origin is the site origin used to build the success and cancel URLs.
	Origin         string
	DefaultPriceID string
	Mode           Mode
}

// LoadClientConfig reads the client configuration from the environment.
func LoadClientConfig() (ClientConfig, error) {
	mode, err := ParseMode(os.Getenv("CHECKOUT_MODE"))
	if err != nil {
		return ClientConfig{}, err
	}
	return ClientConfig{
		PublishableKey: strings.TrimSpace(os.Getenv("STRIPE_PUBLISHABLE_KEY")),
		APIBaseURL:     strings.TrimRight(strings.TrimSpace(os.Getenv("API_URL")), "/"),
		Origin:         strings.TrimRight(strings.TrimSpace(os.Getenv("SITE_ORIGIN")), "/"),
		DefaultPriceID: strings.TrimSpace(os.Getenv("STRIPE_PRICE_PAPERBACK")),
		Mode:           mode,
	}, nil
}

// SuccessURL is where the provider sends the buyer after paying.
func (c ClientConfig) SuccessURL() string {
	return c.Origin + "?checkout=success"
}

// CancelURL is where the provider sends the buyer after backing out.
func (c ClientConfig) CancelURL() string {
	return c.Origin + "?checkout=cancelled"
}
