package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/stoicaf-backend/internal/service"
	"github.com/sefazor/stoicaf-backend/pkg/email"
	"github.com/sefazor/stoicaf-backend/pkg/newsletter"
	"github.com/sefazor/stoicaf-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubSubscriber struct {
	configured bool
	err        error
}

func (s stubSubscriber) Configured() bool { return s.configured }

func (s stubSubscriber) Subscribe(context.Context, string) error { return s.err }

type stubMailer struct {
	err error
}

func (m stubMailer) SendContactMessage(email.ContactMessage) error { return m.err }

func newFormsApp(sub service.Subscriber, mailer service.ContactMailer) *fiber.App {
	v := utils.NewValidator()
	nh := NewNewsletterHandler(service.NewNewsletterService(sub, zap.NewNop()), v)
	ch := NewContactHandler(service.NewContactService(mailer, nil, zap.NewNop()), v)

	app := fiber.New()
	app.Post("/api/newsletter", nh.Subscribe)
	app.Post("/api/contact", ch.Submit)
	return app
}

func TestNewsletterSubscribe(t *testing.T) {
	tests := map[string]struct {
		sub        stubSubscriber
		body       string
		wantStatus int
		wantKey    string
		wantValue  string
	}{
		"subscribed": {
			sub:        stubSubscriber{configured: true},
			body:       `{"email":"reader@x.test"}`,
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantValue:  service.SubscribedMessage,
		},
		"pending": {
			sub:        stubSubscriber{},
			body:       `{"email":"reader@x.test"}`,
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantValue:  service.SubscribePendingMessage,
		},
		"invalid email": {
			sub:        stubSubscriber{configured: true},
			body:       `{"email":"not-an-email"}`,
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Please enter a valid email address",
		},
		"malformed": {
			sub:        stubSubscriber{configured: true},
			body:       `email=reader@x.test`,
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Invalid request body",
		},
		"rejected upstream": {
			sub:        stubSubscriber{configured: true, err: &newsletter.APIError{StatusCode: http.StatusBadRequest, Message: "Email domain is blocked"}},
			body:       `{"email":"reader@x.test"}`,
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Email domain is blocked",
		},
		"upstream down": {
			sub:        stubSubscriber{configured: true, err: errors.New("connection reset")},
			body:       `{"email":"reader@x.test"}`,
			wantStatus: http.StatusBadGateway,
			wantKey:    "error",
			wantValue:  "Something went wrong. Please try again.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			app := newFormsApp(tt.sub, stubMailer{})

			resp, body := doRequest(t, app, http.MethodPost, "/api/newsletter", tt.body)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantValue, body[tt.wantKey])
		})
	}
}

func TestContactSubmit(t *testing.T) {
	valid := `{"name":"Marcus","email":"marcus@x.test","subject":"Hi","message":"Hello"}`

	resp, body := doRequest(t, newFormsApp(stubSubscriber{}, stubMailer{}), http.MethodPost, "/api/contact", valid)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, service.ContactReceivedMessage, body["message"])

	resp, body = doRequest(t, newFormsApp(stubSubscriber{}, stubMailer{err: email.ErrNotConfigured}), http.MethodPost, "/api/contact", valid)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, service.ContactReceivedMessage, body["message"])

	resp, body = doRequest(t, newFormsApp(stubSubscriber{}, stubMailer{}), http.MethodPost, "/api/contact", `{"name":"Marcus","email":"marcus@x.test"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	resp, body = doRequest(t, newFormsApp(stubSubscriber{}, stubMailer{err: errors.New("resend down")}), http.MethodPost, "/api/contact", valid)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "We couldn't send your message. Please try again.", body["error"])
}

func TestSiteConfig(t *testing.T) {
	h := NewSiteHandler(service.NewSiteService("pk_test_1", "price_123", "dark", "redirect", zap.NewNop()))
	app := fiber.New()
	app.Get("/api/config", h.GetConfig)

	resp, body := doRequest(t, app, http.MethodGet, "/api/config", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{
		"publishableKey": "pk_test_1",
		"defaultPriceId": "price_123",
		"theme":          "dark",
		"checkoutMode":   "redirect",
	}, body)
}
