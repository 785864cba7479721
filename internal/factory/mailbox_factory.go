package factory

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/mikey/llm-auto-responder/internal/adapters/mailbox"
	"github.com/mikey/llm-auto-responder/internal/adapters/sendgrid"
	"github.com/mikey/llm-auto-responder/internal/adapters/ses"
	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/core"
	"go.uber.org/zap"
)

// MailboxFactory creates the inbound reader and the outbound sender
type MailboxFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewMailboxFactory creates a new MailboxFactory
func NewMailboxFactory(cfg *config.Config, logger *zap.Logger) *MailboxFactory {
	return &MailboxFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReader creates the IMAP mailbox reader
func (f *MailboxFactory) CreateReader() core.MailReader {
	imapCfg := f.cfg.GetIMAP()
	account := f.cfg.GetAccount()

	if account.Address == "" || account.Password == "" {
		f.logger.Warn("Mailbox credentials not set, fetching will be skipped")
	}

	return mailbox.NewIMAPReader(
		imapCfg.Server,
		imapCfg.Port,
		imapCfg.Mailbox,
		account.Address,
		account.Password,
		imapCfg.Timeout,
		f.logger,
	)
}

// CreateSender creates the outbound sender selected by sender.transport
func (f *MailboxFactory) CreateSender(ctx context.Context) (core.MailSender, error) {
	senderCfg := f.cfg.GetSender()
	account := f.cfg.GetAccount()

	switch senderCfg.Transport {
	case "", "smtp":
		smtpCfg := f.cfg.GetSMTP()
		return mailbox.NewSMTPSender(
			smtpCfg.Server,
			smtpCfg.Port,
			smtpCfg.TLS,
			account.Address,
			account.Password,
			senderCfg.FromName,
			smtpCfg.Timeout,
			f.logger,
		), nil
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(f.cfg.GetSES().Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		return ses.NewSender(
			sesv2.NewFromConfig(awsCfg),
			account.Address,
			senderCfg.FromName,
			senderCfg.Timeout,
			f.logger,
		), nil
	case "sendgrid":
		sgCfg := f.cfg.GetSendGrid()
		if sgCfg.APIKey == "" {
			f.logger.Warn("SendGrid API key not set, replies will not be sent")
		}
		return sendgrid.NewSender(
			sgCfg.APIKey,
			sgCfg.Host,
			account.Address,
			senderCfg.FromName,
			senderCfg.Timeout,
			f.logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported sender transport: %s", senderCfg.Transport)
	}
}
