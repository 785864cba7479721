package mailbox

import (
	"bytes"
	"context"
	"crypto/tls"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapserver"
	"github.com/emersion/go-imap/v2/imapserver/imapmemserver"
	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	mailboxUser     = "agent@example.com"
	mailboxPassword = "secret"
)

// startMailbox serves an in-memory INBOX over implicit TLS
func startMailbox(t *testing.T) (*imapmemserver.User, int) {
	t.Helper()

	memServer := imapmemserver.New()
	user := imapmemserver.NewUser(mailboxUser, mailboxPassword)
	require.NoError(t, user.Create("INBOX", nil))
	memServer.AddUser(user)

	server := imapserver.New(&imapserver.Options{
		NewSession: func(_ *imapserver.Conn) (imapserver.Session, *imapserver.GreetingData, error) {
			return memServer.NewSession(), nil, nil
		},
		Caps: imap.CapSet{
			imap.CapIMAP4rev1: {},
			imap.CapIMAP4rev2: {},
		},
		InsecureAuth: true,
	})

	ln, err := tls.Listen("tcp", "127.0.0.1:0", selfSignedTLSConfig(t))
	require.NoError(t, err)
	go func() {
		_ = server.Serve(ln)
	}()
	t.Cleanup(func() { server.Close() })

	return user, ln.Addr().(*net.TCPAddr).Port
}

func appendMessage(t *testing.T, user *imapmemserver.User, raw string, flags ...imap.Flag) {
	t.Helper()
	r := bytes.NewReader([]byte(strings.ReplaceAll(raw, "\n", "\r\n")))
	_, err := user.Append("INBOX", r, &imap.AppendOptions{Flags: flags, Time: time.Now()})
	require.NoError(t, err)
}

func unseenCount(t *testing.T, user *imapmemserver.User) uint32 {
	t.Helper()
	status, err := user.Status("INBOX", &imap.StatusOptions{NumUnseen: true})
	require.NoError(t, err)
	require.NotNil(t, status.NumUnseen)
	return *status.NumUnseen
}

func newTestReader(port int) *IMAPReader {
	r := NewIMAPReader("127.0.0.1", port, "INBOX", mailboxUser, mailboxPassword, 5*time.Second, zap.NewNop())
	r.tlsConfig = &tls.Config{InsecureSkipVerify: true}
	return r
}

func TestIMAPReaderFetchesNewestUnseenFirst(t *testing.T) {
	user, port := startMailbox(t)

	appendMessage(t, user, `From: old@example.com
To: agent@example.com
Subject: older

old body
`)
	appendMessage(t, user, `From: seen@example.com
To: agent@example.com
Subject: already read

seen body
`, imap.FlagSeen)
	appendMessage(t, user, `From: Bob <bob@example.com>
To: agent@example.com
Subject: newest
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary=ALT

--ALT
Content-Type: text/html; charset=utf-8

<p>html body</p>
--ALT
Content-Type: text/plain; charset=utf-8

plain body
--ALT--
`)
	require.Equal(t, uint32(2), unseenCount(t, user))

	r := newTestReader(port)
	ctx := context.Background()

	msg, err := r.FetchLatestUnread(ctx)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "bob@example.com", msg.SenderAddress)
	assert.Equal(t, "newest", msg.Subject)
	assert.Equal(t, "plain body", strings.TrimSpace(msg.Body))
	assert.Equal(t, uint32(3), msg.UID)
	assert.Equal(t, uint32(1), unseenCount(t, user))

	msg, err = r.FetchLatestUnread(ctx)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "old@example.com", msg.SenderAddress)
	assert.Equal(t, uint32(1), msg.UID)
	assert.Equal(t, uint32(0), unseenCount(t, user))

	msg, err = r.FetchLatestUnread(ctx)
	assert.NoError(t, err)
	assert.Nil(t, msg)
}

func TestIMAPReaderEmptyMailbox(t *testing.T) {
	_, port := startMailbox(t)

	msg, err := newTestReader(port).FetchLatestUnread(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, msg)
}

func TestIMAPReaderMarksSeenBeforeProcessing(t *testing.T) {
	user, port := startMailbox(t)
	appendMessage(t, user, `To: agent@example.com
Subject: no sender

body
`)

	r := newTestReader(port)

	msg, err := r.FetchLatestUnread(context.Background())
	assert.Error(t, err)
	assert.Nil(t, msg)
	assert.Equal(t, uint32(0), unseenCount(t, user))

	msg, err = r.FetchLatestUnread(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, msg)
}

func TestIMAPReaderRejectedLogin(t *testing.T) {
	_, port := startMailbox(t)

	r := NewIMAPReader("127.0.0.1", port, "INBOX", mailboxUser, "wrong", 5*time.Second, zap.NewNop())
	r.tlsConfig = &tls.Config{InsecureSkipVerify: true}

	msg, err := r.FetchLatestUnread(context.Background())
	assert.Nil(t, msg)
	assert.ErrorIs(t, err, core.ErrTransport)
}
