package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sefazor/stoicaf-backend/internal/metrics"
	"github.com/sefazor/stoicaf-backend/internal/models"
	"github.com/sefazor/stoicaf-backend/pkg/email"
	"go.uber.org/zap"
)

const (
	ContactReceivedMessage = "Thanks for reaching out! We'll get back to you soon."
	challengeFailedMessage = "Please complete the verification challenge."
)

type ContactMailer interface {
	SendContactMessage(msg email.ContactMessage) error
}

// HumanVerifier checks a bot-challenge token.
type HumanVerifier interface {
	Configured() bool
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

type ContactService struct {
	mailer   ContactMailer
	verifier HumanVerifier
	logger   *zap.Logger
}

func NewContactService(mailer ContactMailer, verifier HumanVerifier, logger *zap.Logger) *ContactService {
	return &ContactService{
		mailer:   mailer,
		verifier: verifier,
		logger:   logger,
	}
}

// Submit forwards the message to the inbox. Without a mail provider the
// submission is accepted and only logged.
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest, remoteIP string) (string, error) {
	if s.verifier != nil && s.verifier.Configured() {
		ok, err := s.verifier.Verify(ctx, req.ChallengeToken, remoteIP)
		if err != nil {
			metrics.ContactMessages.WithLabelValues("error").Inc()
			return "", &ProviderError{Provider: "turnstile", Message: "We couldn't verify your submission. Please try again.", Err: err}
		}
		if !ok {
			metrics.ContactMessages.WithLabelValues("rejected").Inc()
			s.logger.Info("contact form failed challenge", zap.String("remote_ip", remoteIP))
			return "", &ValidationError{Message: challengeFailedMessage}
		}
	}

	msg := email.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	err := s.mailer.SendContactMessage(msg)
	switch {
	case err == nil:
		metrics.ContactMessages.WithLabelValues("sent").Inc()
	case errors.Is(err, email.ErrNotConfigured):
		metrics.ContactMessages.WithLabelValues("logged").Inc()
		s.logger.Info("contact form received without mail provider",
			zap.String("email", msg.Email),
			zap.String("subject", msg.Subject),
		)
	default:
		metrics.ContactMessages.WithLabelValues("error").Inc()
		return "", &ProviderError{Provider: "resend", Message: "We couldn't send your message. Please try again.", Err: err}
	}

	return ContactReceivedMessage, nil
}
