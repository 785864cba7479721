package mailbox

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/mikey/llm-auto-responder/internal/core"
)

// DefaultSubject is used when the incoming message has no subject
const DefaultSubject = "No Subject"

var errStopWalk = errors.New("stop walk")

// ParseMessage extracts sender, subject and plain-text body from a raw RFC 822 message
func ParseMessage(raw []byte) (*core.IncomingMessage, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	header := mail.Header{Header: entity.Header}
	msg := &core.IncomingMessage{
		SenderAddress: senderAddress(header),
		Subject:       subject(header),
	}
	if id, err := header.MessageID(); err == nil {
		msg.MessageID = id
	}

	body, err := extractText(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}
	msg.Body = body

	return msg, nil
}

func senderAddress(h mail.Header) string {
	if addrs, err := h.AddressList("From"); err == nil && len(addrs) > 0 {
		return addrs[0].Address
	}
	return extractEmailAddress(h.Get("From"))
}

func subject(h mail.Header) string {
	if !h.Has("Subject") {
		return DefaultSubject
	}
	s, _ := h.Subject()
	if strings.TrimSpace(s) == "" {
		return DefaultSubject
	}
	return s
}

// extractText returns the whole body of a single-part message, or the first
// text/plain part of a multipart one, depth-first. Empty when there is none.
func extractText(entity *message.Entity) (string, error) {
	if entity.MultipartReader() == nil {
		b, err := io.ReadAll(entity.Body)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	var text string
	err := entity.Walk(func(path []int, part *message.Entity, err error) error {
		if part == nil || part.MultipartReader() != nil {
			return nil
		}
		contentType, _, _ := part.Header.ContentType()
		if contentType != "" && contentType != "text/plain" {
			return nil
		}
		if disp, _, _ := part.Header.ContentDisposition(); disp == "attachment" {
			return nil
		}
		b, readErr := io.ReadAll(part.Body)
		if readErr != nil {
			return readErr
		}
		text = string(b)
		return errStopWalk
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return text, err
	}
	return text, nil
}

// extractEmailAddress extracts the email address from a string
func extractEmailAddress(s string) string {
	// Simple extraction for addresses like "Name <email@example.com>"
	start := strings.LastIndex(s, "<")
	end := strings.LastIndex(s, ">")

	if start >= 0 && end > start {
		return strings.TrimSpace(s[start+1 : end])
	}

	return strings.TrimSpace(s)
}

// ComposeReply renders a plain-text UTF-8 message
func ComposeReply(from *mail.Address, to, subject, body string) ([]byte, error) {
	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{from})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("failed to generate message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create message writer: %w", err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close message writer: %w", err)
	}

	return buf.Bytes(), nil
}
