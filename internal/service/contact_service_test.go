package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sefazor/stoicaf-backend/internal/models"
	"github.com/sefazor/stoicaf-backend/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubMailer struct {
	err  error
	sent []email.ContactMessage
}

func (m *stubMailer) SendContactMessage(msg email.ContactMessage) error {
	m.sent = append(m.sent, msg)
	return m.err
}

type stubVerifier struct {
	configured bool
	ok         bool
	err        error
	gotToken   string
	gotIP      string
}

func (v *stubVerifier) Configured() bool { return v.configured }

func (v *stubVerifier) Verify(_ context.Context, token, remoteIP string) (bool, error) {
	v.gotToken, v.gotIP = token, remoteIP
	return v.ok, v.err
}

func TestContactSubmit(t *testing.T) {
	req := models.ContactRequest{Name: " Marcus ", Email: "marcus@x.test", Subject: "Hi", Message: "Hello\n", ChallengeToken: "tok"}
	ctx := context.Background()

	t.Run("sent", func(t *testing.T) {
		mailer := &stubMailer{}
		msg, err := NewContactService(mailer, nil, zap.NewNop()).Submit(ctx, req, "203.0.113.7")

		require.NoError(t, err)
		assert.Equal(t, ContactReceivedMessage, msg)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "Marcus", mailer.sent[0].Name)
		assert.Equal(t, "Hello", mailer.sent[0].Message)
	})

	t.Run("no mail provider", func(t *testing.T) {
		msg, err := NewContactService(&stubMailer{err: email.ErrNotConfigured}, nil, zap.NewNop()).Submit(ctx, req, "")

		require.NoError(t, err)
		assert.Equal(t, ContactReceivedMessage, msg)
	})

	t.Run("delivery failure", func(t *testing.T) {
		_, err := NewContactService(&stubMailer{err: errors.New("resend: 500")}, nil, zap.NewNop()).Submit(ctx, req, "")

		var providerErr *ProviderError
		require.True(t, errors.As(err, &providerErr))
	})

	t.Run("challenge passed", func(t *testing.T) {
		mailer := &stubMailer{}
		verifier := &stubVerifier{configured: true, ok: true}
		_, err := NewContactService(mailer, verifier, zap.NewNop()).Submit(ctx, req, "203.0.113.7")

		require.NoError(t, err)
		assert.Equal(t, "tok", verifier.gotToken)
		assert.Equal(t, "203.0.113.7", verifier.gotIP)
		assert.Len(t, mailer.sent, 1)
	})

	t.Run("challenge failed", func(t *testing.T) {
		mailer := &stubMailer{}
		_, err := NewContactService(mailer, &stubVerifier{configured: true}, zap.NewNop()).Submit(ctx, req, "")

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "Please complete the verification challenge.", validationErr.Message)
		assert.Empty(t, mailer.sent)
	})

	t.Run("challenge unavailable", func(t *testing.T) {
		mailer := &stubMailer{}
		_, err := NewContactService(mailer, &stubVerifier{configured: true, err: errors.New("timeout")}, zap.NewNop()).Submit(ctx, req, "")

		var providerErr *ProviderError
		require.True(t, errors.As(err, &providerErr))
		assert.Empty(t, mailer.sent)
	})

	t.Run("verifier disabled", func(t *testing.T) {
		mailer := &stubMailer{}
		verifier := &stubVerifier{}
		_, err := NewContactService(mailer, verifier, zap.NewNop()).Submit(ctx, req, "")

		require.NoError(t, err)
		assert.Empty(t, verifier.gotToken)
		assert.Len(t, mailer.sent, 1)
	})
}
