package checkout

// Status is the phase of a single checkout attempt.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
	// StatusRedirected means the browser was sent to the hosted page.
	StatusRedirected
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	case StatusRedirected:
		return "redirected"
	default:
		return "unknown"
	}
}

// State is a snapshot of the controller. ClientSecret is set only when
// Ready, Error and ErrorKind only when Error, RedirectURL only when Redirected.
type State struct {
	Status       Status
	ClientSecret string
	RedirectURL  string
	Error        string
	ErrorKind    ErrorKind
}

// CanRetry reports whether the UI should offer a retry action.
func (s State) CanRetry() bool {
	return s.Status == StatusError
}
