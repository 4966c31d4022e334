package checkout

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	msgAPIURLMissing  = "API URL not configured"
	msgKeyMissing     = "Payment provider key not configured"
	msgPriceMissing   = "Price ID not configured"
	msgRequestFailed  = "Failed to create checkout session"
	msgNetworkFailure = "Could not reach checkout. Please check your connection and try again."
	msgEmptySession   = "Checkout session could not be started"
)

// Session is the result of one acquisition. Embedded modes use ClientSecret,
// Redirect uses URL.
type Session struct {
	ClientSecret string
	URL          string
}

// Acquirer obtains a fresh checkout session. Each call must mint a new one.
type Acquirer interface {
	Acquire(ctx context.Context) (Session, error)
}

// AcquirerFunc adapts a function to Acquirer.
type AcquirerFunc func(ctx context.Context) (Session, error)

func (f AcquirerFunc) Acquire(ctx context.Context) (Session, error) {
	return f(ctx)
}

type sessionRequest struct {
	PriceID    string `json:"priceId,omitempty"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
	UIMode     string `json:"uiMode,omitempty"`
}

type sessionResponse struct {
	ClientSecret string `json:"clientSecret"`
	URL          string `json:"url"`
	Error        string `json:"error"`
}

// ServerAcquirer asks the session endpoint for a new session.
type ServerAcquirer struct {
	client *resty.Client
	cfg    ClientConfig
}

func NewServerAcquirer(cfg ClientConfig) *ServerAcquirer {
	return &ServerAcquirer{
		client: resty.New().
			SetBaseURL(cfg.APIBaseURL).
			SetRetryCount(0).
			SetHeader("Content-Type", "application/json"),
		cfg: cfg,
	}
}

// WithTimeout sets a transport timeout. None is set by default.
func (a *ServerAcquirer) WithTimeout(d time.Duration) *ServerAcquirer {
	a.client.SetTimeout(d)
	return a
}

func (a *ServerAcquirer) Acquire(ctx context.Context) (Session, error) {
	if a.cfg.APIBaseURL == "" {
		return Session{}, newError(ConfigurationError, msgAPIURLMissing, nil)
	}

	body := sessionRequest{
		SuccessURL: a.cfg.SuccessURL(),
		CancelURL:  a.cfg.CancelURL(),
	}
	switch a.cfg.Mode {
	case Redirect:
		body.PriceID = a.cfg.DefaultPriceID
		body.UIMode = "hosted"
	case EmbeddedClientFetch:
		body.PriceID = a.cfg.DefaultPriceID
	case EmbeddedServerFetch:
		// the endpoint resolves its own default price
	}

	var result sessionResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/api/checkout")
	if err != nil {
		return Session{}, newError(ProviderError, msgNetworkFailure, err)
	}

	if resp.IsError() {
		msg := result.Error
		if msg == "" {
			msg = msgRequestFailed
		}
		switch {
		case resp.StatusCode() == http.StatusBadRequest && msg == msgPriceMissing:
			return Session{}, newError(ConfigurationError, msg, nil)
		case resp.StatusCode() < http.StatusInternalServerError:
			return Session{}, newError(ValidationError, msg, nil)
		default:
			return Session{}, newError(ProviderError, msg, nil)
		}
	}

	// a 2xx can still carry a provider error
	if result.Error != "" {
		return Session{}, newError(ProviderError, result.Error, nil)
	}

	return Session{ClientSecret: result.ClientSecret, URL: result.URL}, nil
}
