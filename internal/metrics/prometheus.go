package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// CheckoutSessions counts session-creation outcomes by ui mode
	CheckoutSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Checkout session creation attempts by ui mode and result",
		},
		[]string{"ui_mode", "result"},
	)

	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stripe_webhook_events_total",
			Help: "Verified Stripe webhook events by type",
		},
		[]string{"type"},
	)

	NewsletterSubscriptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_subscriptions_total",
			Help: "Newsletter subscription attempts by result",
		},
		[]string{"result"},
	)

	// CircuitBreakerState tracks circuit breaker state (0=closed, 1=open, 2=half-open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"circuit_name"},
	)

	ContactMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_messages_total",
			Help: "Contact form submissions by delivery result",
		},
		[]string{"result"},
	)
)
