package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Classifier asks the LLM to classify a message and draft replies
type Classifier struct {
	client  LLMClient
	prompts *PromptBuilder
	timeout time.Duration
	logger  *zap.Logger
}

// NewClassifier creates a new Classifier. A nil client means the provider is unconfigured.
func NewClassifier(client LLMClient, prompts *PromptBuilder, timeout time.Duration, logger *zap.Logger) *Classifier {
	return &Classifier{
		client:  client,
		prompts: prompts,
		timeout: timeout,
		logger:  logger,
	}
}

// Configured reports whether an LLM client is available
func (c *Classifier) Configured() bool {
	return c.client != nil
}

// Classify returns nil when the message could not be classified. Failures are logged.
func (c *Classifier) Classify(ctx context.Context, msg *IncomingMessage) *ClassificationResult {
	result, err := c.TryClassify(ctx, msg)
	if err != nil {
		c.logger.Warn("Classification failed",
			zap.String("sender", msg.SenderAddress),
			zap.Error(err))
		return nil
	}
	return result
}

// TryClassify is Classify with the failure reason exposed
func (c *Classifier) TryClassify(ctx context.Context, msg *IncomingMessage) (*ClassificationResult, error) {
	if c.client == nil {
		return nil, fmt.Errorf("%w: no LLM client configured", ErrClassificationUnavailable)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := c.prompts.Build(msg)
	start := time.Now()
	resp, err := c.client.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassificationUnavailable, err)
	}

	c.logger.Debug("LLM response received",
		zap.String("model", resp.ModelUsed),
		zap.String("processing_id", resp.ProcessingID),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_size", len(resp.Text)))

	result, err := ParseClassification(resp.Text)
	if err != nil {
		return nil, err
	}
	result.ModelUsed = resp.ModelUsed
	result.ProcessingID = resp.ProcessingID
	result.AnalyzedAt = time.Now()

	c.logger.Info("Message classified",
		zap.String("sender", msg.SenderAddress),
		zap.Bool("is_technical", result.IsTechnical),
		zap.Bool("request_meeting", result.RequestMeeting),
		zap.String("model", result.ModelUsed))

	return result, nil
}
