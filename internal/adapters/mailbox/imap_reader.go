package mailbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/mikey/llm-auto-responder/internal/core"
	"go.uber.org/zap"
)

// IMAPReader fetches the newest unread message over IMAP with implicit TLS
type IMAPReader struct {
	server    string
	port      int
	mailbox   string
	username  string
	password  string
	timeout   time.Duration
	tlsConfig *tls.Config
	logger    *zap.Logger
}

// NewIMAPReader creates a new IMAP reader
func NewIMAPReader(
	server string,
	port int,
	mailbox string,
	username string,
	password string,
	timeout time.Duration,
	logger *zap.Logger,
) *IMAPReader {
	if mailbox == "" {
		mailbox = "INBOX"
	}
	return &IMAPReader{
		server:    server,
		port:      port,
		mailbox:   mailbox,
		username:  username,
		password:  password,
		timeout:   timeout,
		tlsConfig: &tls.Config{ServerName: server},
		logger:    logger,
	}
}

// FetchLatestUnread marks the most recent unseen message as seen and returns it.
// The most recent message is the last UID of the search result.
func (r *IMAPReader) FetchLatestUnread(ctx context.Context) (*core.IncomingMessage, error) {
	if r.username == "" || r.password == "" {
		return nil, core.ErrTransportUnavailable
	}

	client, err := r.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := client.Logout().Wait(); err != nil {
			r.logger.Debug("IMAP logout failed", zap.Error(err))
		}
		client.Close()
	}()

	if _, err := client.Select(r.mailbox, nil).Wait(); err != nil {
		return nil, fmt.Errorf("%w: selecting %s: %v", core.ErrTransport, r.mailbox, err)
	}

	searchData, err := client.UIDSearch(&imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("%w: searching unseen messages: %v", core.ErrTransport, err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	latest := uids[len(uids)-1]
	uidSet := imap.UIDSetNum(latest)

	r.logger.Debug("Selected unseen message",
		zap.Int("unseen", len(uids)),
		zap.Uint32("uid", uint32(latest)))

	// Marked seen before the body is processed: at most one reply per message
	storeCmd := client.Store(uidSet, &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Silent: true,
		Flags:  []imap.Flag{imap.FlagSeen},
	}, nil)
	if err := storeCmd.Close(); err != nil {
		return nil, fmt.Errorf("%w: marking UID %d seen: %v", core.ErrTransport, latest, err)
	}

	section := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := client.Fetch(uidSet, &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{section},
	})
	defer fetchCmd.Close()

	data := fetchCmd.Next()
	if data == nil {
		return nil, fmt.Errorf("%w: message UID %d not found", core.ErrTransport, latest)
	}
	buf, err := data.Collect()
	if err != nil {
		return nil, fmt.Errorf("%w: fetching UID %d: %v", core.ErrTransport, latest, err)
	}

	raw := buf.FindBodySection(section)
	if raw == nil {
		return nil, fmt.Errorf("%w: UID %d returned no body", core.ErrTransport, latest)
	}

	msg, err := ParseMessage(raw)
	if err != nil {
		return nil, err
	}
	msg.UID = uint32(latest)

	if msg.SenderAddress == "" {
		return nil, fmt.Errorf("message UID %d has no sender address", latest)
	}

	return msg, nil
}

func (r *IMAPReader) connect(ctx context.Context) (*imapclient.Client, error) {
	addr := net.JoinHostPort(r.server, strconv.Itoa(r.port))

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: r.timeout},
		Config:    r.tlsConfig,
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to IMAP %s: %v", core.ErrTransport, addr, err)
	}

	if r.timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(r.timeout)); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: setting IMAP deadline: %v", core.ErrTransport, err)
		}
	}

	client := imapclient.New(conn, nil)
	if err := client.Login(r.username, r.password).Wait(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: IMAP login failed for %s: %v", core.ErrTransport, r.username, err)
	}

	r.logger.Debug("Connected to IMAP server", zap.String("address", addr))
	return client, nil
}
