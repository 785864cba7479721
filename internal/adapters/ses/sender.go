package ses

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/emersion/go-message/mail"
	"github.com/mikey/llm-auto-responder/internal/core"
	"go.uber.org/zap"
)

// SendEmailAPI is the subset of the SES v2 client used for sending
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Sender sends replies via Amazon SES
type Sender struct {
	client    SendEmailAPI
	fromEmail string
	fromName  string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewSender creates a new SES sender
func NewSender(client SendEmailAPI, fromEmail, fromName string, timeout time.Duration, logger *zap.Logger) *Sender {
	return &Sender{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		timeout:   timeout,
		logger:    logger,
	}
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

	from := s.fromEmail
	if s.fromName != "" {
		from = (&mail.Address{Name: s.fromName, Address: s.fromEmail}).String()
	}

	output, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: SES send failed: %v", core.ErrTransport, err)
	}

	s.logger.Debug("Email sent via SES",
		zap.String("recipient", to),
		zap.String("message_id", aws.ToString(output.MessageId)))

	return nil
}
