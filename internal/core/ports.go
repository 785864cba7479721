package core

import (
	"context"
)

// MailReader retrieves the newest unread message from a mailbox
type MailReader interface {
	// FetchLatestUnread returns nil, nil when the mailbox has no unread message.
	// The returned message has already been marked as seen.
	FetchLatestUnread(ctx context.Context) (*IncomingMessage, error)
}

// MailSender delivers a plain-text reply
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LLMClient defines the interface for interacting with LLM services
type LLMClient interface {
	// Complete sends one prompt and returns the raw response text
	Complete(ctx context.Context, req *LLMRequest) (*LLMResponse, error)
}

// LLMRequest is a single schema-constrained completion request
type LLMRequest struct {
	System string
	User   string
	Schema []SchemaField
}

// LLMResponse carries the raw model output
type LLMResponse struct {
	Text         string
	ModelUsed    string
	ProcessingID string
}

// FieldType is the JSON type of a schema field
type FieldType string

const (
	FieldBoolean FieldType = "boolean"
	FieldString  FieldType = "string"
)

// SchemaField describes one required property of the response object
type SchemaField struct {
	Name        string
	Type        FieldType
	Description string
}
