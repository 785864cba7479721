package core

import (
	"context"
)

type fakeLLM struct {
	text     string
	err      error
	requests []*LLMRequest
	deadline bool
}

func (f *fakeLLM) Complete(ctx context.Context, req *LLMRequest) (*LLMResponse, error) {
	f.requests = append(f.requests, req)
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &LLMResponse{Text: f.text, ModelUsed: "fake-model", ProcessingID: "p-1"}, nil
}

type fakeReader struct {
	msg   *IncomingMessage
	err   error
	calls int
}

func (f *fakeReader) FetchLatestUnread(ctx context.Context) (*IncomingMessage, error) {
	f.calls++
	return f.msg, f.err
}

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return f.err
}

type fakeClassifier struct {
	result *ClassificationResult
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, msg *IncomingMessage) *ClassificationResult {
	f.calls++
	return f.result
}

type truncatingText struct{}

func (truncatingText) ProcessText(text string, maxSize int) string {
	if maxSize > 0 && len(text) > maxSize {
		text = text[:maxSize]
	}
	return text
}
