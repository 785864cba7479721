package mailbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/mikey/llm-auto-responder/internal/core"
	"go.uber.org/zap"
)

// TLS modes of the SMTP connection
const (
	TLSImplicit = "implicit"
	TLSStartTLS = "starttls"
	TLSNone     = "none"
)

// SMTPSender submits replies to an SMTP relay
type SMTPSender struct {
	server    string
	port      int
	tlsMode   string
	username  string
	password  string
	fromName  string
	timeout   time.Duration
	tlsConfig *tls.Config
	logger    *zap.Logger
}

// NewSMTPSender creates a new SMTP sender. The account address is used both
// for AUTH PLAIN and as the envelope sender.
func NewSMTPSender(
	server string,
	port int,
	tlsMode string,
	username string,
	password string,
	fromName string,
	timeout time.Duration,
	logger *zap.Logger,
) *SMTPSender {
	return &SMTPSender{
		server:    server,
		port:      port,
		tlsMode:   tlsMode,
		username:  username,
		password:  password,
		fromName:  fromName,
		timeout:   timeout,
		tlsConfig: &tls.Config{ServerName: server},
		logger:    logger,
	}
}

// Send delivers a plain-text message to a single recipient
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if s.username == "" || s.password == "" {
		return core.ErrTransportUnavailable
	}

	data, err := ComposeReply(&mail.Address{Name: s.fromName, Address: s.username}, to, subject, body)
	if err != nil {
		return err
	}

	c, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Auth(sasl.NewPlainClient("", s.username, s.password)); err != nil {
		return fmt.Errorf("%w: SMTP authentication failed: %v", core.ErrTransport, err)
	}

	if err := c.Mail(s.username, nil); err != nil {
		return fmt.Errorf("%w: MAIL FROM failed: %v", core.ErrTransport, err)
	}
	if err := c.Rcpt(to, nil); err != nil {
		return fmt.Errorf("%w: RCPT TO failed: %v", core.ErrTransport, err)
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("%w: DATA command failed: %v", core.ErrTransport, err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("%w: failed to send message data: %v", core.ErrTransport, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("%w: message rejected: %v", core.ErrTransport, err)
	}

	if err := c.Quit(); err != nil {
		// Already accepted by the relay
		s.logger.Warn("QUIT command failed", zap.Error(err))
	}

	s.logger.Debug("Message submitted",
		zap.String("recipient", to),
		zap.Int("size", len(data)))

	return nil
}

// dial connects to the relay and completes the greeting for the configured TLS mode
func (s *SMTPSender) dial(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.server, strconv.Itoa(s.port))
	netDialer := &net.Dialer{Timeout: s.timeout}

	var conn net.Conn
	var err error
	if s.tlsMode == TLSImplicit || s.tlsMode == "" {
		conn, err = (&tls.Dialer{NetDialer: netDialer, Config: s.tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = netDialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to SMTP %s: %v", core.ErrTransport, addr, err)
	}

	if s.timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: setting SMTP deadline: %v", core.ErrTransport, err)
		}
	}

	// NewClientStartTLS sends its own EHLO, a second Hello would be rejected
	if s.tlsMode == TLSStartTLS {
		c, err := smtp.NewClientStartTLS(conn, s.tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("%w: STARTTLS failed: %v", core.ErrTransport, err)
		}
		return c, nil
	}

	c := smtp.NewClient(conn)
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	if err := c.Hello(hostname); err != nil {
		c.Close()
		return nil, fmt.Errorf("%w: EHLO failed: %v", core.ErrTransport, err)
	}
	return c, nil
}
