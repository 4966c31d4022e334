package checkout

import "fmt"

// ErrorKind classifies acquisition failures.
type ErrorKind int

const (
	// ConfigurationError needs operator action (missing key, URL or price).
	ConfigurationError ErrorKind = iota + 1
	// ValidationError is a malformed request; a client bug.
	ValidationError
	// ProviderError is a network or payment-provider failure.
	ProviderError
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationError:
		return "configuration"
	case ValidationError:
		return "validation"
	case ProviderError:
		return "provider"
	default:
		return "unknown"
	}
}

// Error is what an Acquirer returns. Message is shown to the user as is.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether a user retry can succeed without operator action.
func (e *Error) Retryable() bool {
	return e.Kind == ProviderError
}

func newError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}
