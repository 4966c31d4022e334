package newsletter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

const DefaultBaseURL = "https://api.convertkit.com"

const defaultTimeout = 10 * time.Second

// ErrNotConfigured is returned when the form id or api key is missing.
var ErrNotConfigured = errors.New("newsletter provider not configured")

// APIError is a non-2xx answer from ConvertKit.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("convertkit: status %d", e.StatusCode)
	}
	return fmt.Sprintf("convertkit: status %d: %s", e.StatusCode, e.Message)
}

type subscribeRequest struct {
	APIKey string `json:"api_key"`
	Email  string `json:"email"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ConvertKitClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	formID  string
	apiKey  string
}

// NewConvertKitClient builds a client for the v3 forms API. onStateChange may
// be nil.
func NewConvertKitClient(baseURL, formID, apiKey string, onStateChange func(name string, from, to gobreaker.State)) *ConvertKitClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ConvertKitClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetRetryCount(0).
			SetHeader("Content-Type", "application/json"),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "convertkit",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: onStateChange,
		}),
		formID: formID,
		apiKey: apiKey,
	}
}

func (c *ConvertKitClient) Configured() bool {
	return c.formID != "" && c.apiKey != ""
}

// Subscribe adds email to the configured form. Upstream rejections come back
// as *APIError; transport failures and an open breaker come back as-is.
func (c *ConvertKitClient) Subscribe(ctx context.Context, email string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		var apiErr errorBody
		resp, err := c.http.R().
			SetContext(ctx).
			SetPathParam("formID", c.formID).
			SetBody(subscribeRequest{APIKey: c.apiKey, Email: email}).
			SetError(&apiErr).
			Post("/v3/forms/{formID}/subscribe")
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return nil, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.Message}
		}
		if resp.IsError() {
			// client-side rejections (bad email, bad key) do not trip the breaker
			msg := apiErr.Message
			if msg == "" {
				msg = apiErr.Error
			}
			return &APIError{StatusCode: resp.StatusCode(), Message: msg}, nil
		}
		return nil, nil
	})
	if err != nil {
		return err
	}
	if apiErr, ok := res.(*APIError); ok && apiErr != nil {
		return apiErr
	}
	return nil
}
