package sendgrid

import (
	"context"
	"fmt"
	"time"

	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const sendEndpoint = "/v3/mail/send"

// Sender sends replies through the SendGrid v3 API
type Sender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewSender creates a new SendGrid sender. host may be empty for the public API.
func NewSender(apiKey, host, fromEmail, fromName string, timeout time.Duration, logger *zap.Logger) *Sender {
	s := &Sender{
		fromEmail: fromEmail,
		fromName:  fromName,
		timeout:   timeout,
		logger:    logger,
	}
	if apiKey != "" {
		req := sendgrid.GetRequest(apiKey, sendEndpoint, host)
		req.Method = "POST"
		s.client = &sendgrid.Client{Request: req}
	}
	return s
}

// Send sends a plain-text email
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if s.client == nil || s.fromEmail == "" {
		return core.ErrTransportUnavailable
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(s.fromName, s.fromEmail))
	message.Subject = subject
	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", to))
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/plain", body))

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid send failed: %v", core.ErrTransport, err)
	}
	if response.StatusCode >= 400 {
		s.logger.Debug("SendGrid error body", zap.String("body", response.Body))
		return fmt.Errorf("%w: sendgrid returned status %d", core.ErrTransport, response.StatusCode)
	}

	s.logger.Debug("Email sent via SendGrid",
		zap.String("recipient", to),
		zap.Int("status", response.StatusCode))

	return nil
}
