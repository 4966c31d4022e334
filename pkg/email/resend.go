package email

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

var ErrNotConfigured = errors.New("email delivery not configured")

type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type EmailService struct {
	client    *resend.Client
	from      string
	fromName  string
	inbox     string
	templates *template.Template
	logger    *zap.Logger
}

func NewEmailService(apiKey, from, fromName, inbox string, logger *zap.Logger) *EmailService {
	s := &EmailService{
		from:      from,
		fromName:  fromName,
		inbox:     inbox,
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
		logger:    logger,
	}
	if apiKey != "" {
		s.client = resend.NewClient(apiKey)
	}
	return s
}

func (s *EmailService) Configured() bool {
	return s.client != nil && s.from != "" && s.inbox != ""
}

// SendContactMessage forwards a contact form submission to the site inbox.
// Replies go straight to the visitor.
func (s *EmailService) SendContactMessage(msg ContactMessage) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	html, err := s.renderContact(msg)
	if err != nil {
		s.logger.Error("contact template failed", zap.Error(err))
		return err
	}

	subject := msg.Subject
	if subject == "" {
		subject = "New message from " + msg.Name
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{s.inbox},
		ReplyTo: msg.Email,
		Subject: "[Contact] " + subject,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send contact email", zap.String("reply_to", msg.Email), zap.Error(err))
		return err
	}

	s.logger.Info("contact email sent", zap.String("email_id", resp.Id))
	return nil
}

func (s *EmailService) renderContact(msg ContactMessage) (string, error) {
	data := map[string]interface{}{
		"Name":    msg.Name,
		"Email":   msg.Email,
		"Subject": msg.Subject,
		"Message": msg.Message,
		"Year":    time.Now().Year(),
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "contact.html", data); err != nil {
		return "", err
	}
	return body.String(), nil
}
