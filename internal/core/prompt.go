package core

import (
	"fmt"
)

// TextPreparer cleans up message text before it is embedded in a prompt
type TextPreparer interface {
	ProcessText(text string, maxSize int) string
}

// Persona is the static configuration sent with every classification request
type Persona struct {
	Instructions            string
	Knowledge               string
	ClassificationCondition string
	Signature               string
}

// PromptBuilder composes classification requests
type PromptBuilder struct {
	persona      Persona
	text         TextPreparer
	maxBodySize  int
	promptFormat string
}

// NewPromptBuilder creates a new PromptBuilder. text may be nil.
func NewPromptBuilder(persona Persona, text TextPreparer, maxBodySize int) *PromptBuilder {
	return &PromptBuilder{
		persona:     persona,
		text:        text,
		maxBodySize: maxBodySize,
		promptFormat: `%s

Ensure replies always end with:
%s

Classification condition (answer it in is_technical):
%s

%s
FROM: %s
SUBJECT: %s
BODY:
%s`,
	}
}

// Build returns the request for one message
func (p *PromptBuilder) Build(msg *IncomingMessage) *LLMRequest {
	body := msg.Body
	if p.text != nil {
		body = p.text.ProcessText(body, p.maxBodySize)
	}

	user := fmt.Sprintf(p.promptFormat,
		p.persona.Knowledge,
		p.persona.Signature,
		p.persona.ClassificationCondition,
		SchemaDescription(ClassificationFields),
		msg.SenderAddress,
		msg.Subject,
		body,
	)

	return &LLMRequest{
		System: p.persona.Instructions,
		User:   user,
		Schema: ClassificationFields,
	}
}
