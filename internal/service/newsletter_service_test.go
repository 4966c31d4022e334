package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sefazor/stoicaf-backend/pkg/newsletter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSubscriber struct {
	configured bool
	err        error
	emails     []string
}

func (s *stubSubscriber) Configured() bool { return s.configured }

func (s *stubSubscriber) Subscribe(_ context.Context, email string) error {
	s.emails = append(s.emails, email)
	return s.err
}

func TestNewsletterSubscribe(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		sub := &stubSubscriber{}
		msg, err := NewNewsletterService(sub, zap.NewNop()).Subscribe(context.Background(), "reader@x.test")

		require.NoError(t, err)
		assert.Equal(t, SubscribePendingMessage, msg)
		assert.Empty(t, sub.emails)
	})

	t.Run("subscribed", func(t *testing.T) {
		sub := &stubSubscriber{configured: true}
		msg, err := NewNewsletterService(sub, zap.NewNop()).Subscribe(context.Background(), "reader@x.test")

		require.NoError(t, err)
		assert.Equal(t, SubscribedMessage, msg)
		assert.Equal(t, []string{"reader@x.test"}, sub.emails)
	})

	t.Run("rejected address", func(t *testing.T) {
		sub := &stubSubscriber{configured: true, err: &newsletter.APIError{StatusCode: http.StatusUnprocessableEntity, Message: "Email address is invalid"}}
		_, err := NewNewsletterService(sub, zap.NewNop()).Subscribe(context.Background(), "nope@x")

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "Email address is invalid", validationErr.Message)
	})

	t.Run("upstream down", func(t *testing.T) {
		sub := &stubSubscriber{configured: true, err: errors.New("dial tcp: connection refused")}
		_, err := NewNewsletterService(sub, zap.NewNop()).Subscribe(context.Background(), "reader@x.test")

		var providerErr *ProviderError
		require.True(t, errors.As(err, &providerErr))
		assert.Equal(t, "Something went wrong. Please try again.", providerErr.Message)
	})
}
