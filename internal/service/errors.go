package service

import "errors"

// ErrPriceNotConfigured is returned when neither the request nor the server
// configuration names a price.
var ErrPriceNotConfigured = errors.New("Price ID not configured")

// ValidationError reports a request the client must fix before retrying.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProviderError wraps a failed call to a third-party API. Message is safe to
// show to users; Err is only logged.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
