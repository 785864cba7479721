package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/google/uuid"
	"github.com/mikey/llm-auto-responder/internal/core"
	"go.uber.org/zap"
)

// ConverseAPI is the subset of the Bedrock runtime client used for completions
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockClient is an implementation of the LLMClient interface using Amazon Bedrock
type BedrockClient struct {
	client      ConverseAPI
	modelID     string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *zap.Logger
}

// NewBedrockClient creates a new Bedrock client
func NewBedrockClient(
	client ConverseAPI,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) *BedrockClient {
	return &BedrockClient{
		client:      client,
		modelID:     modelID,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		logger:      logger,
	}
}

// Complete sends the request through the Converse API. Bedrock has no generic
// response schema, so the schema is carried in the system prompt.
func (c *BedrockClient) Complete(ctx context.Context, req *core.LLMRequest) (*core.LLMResponse, error) {
	system := req.System
	if len(req.Schema) > 0 {
		system += "\n\n" + core.SchemaDescription(req.Schema)
	}

	inference := &brtypes.InferenceConfiguration{
		Temperature: aws.Float32(c.temperature),
		TopP:        aws.Float32(c.topP),
	}
	if c.maxTokens > 0 {
		inference.MaxTokens = aws.Int32(int32(c.maxTokens))
	}

	resp, err := c.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.modelID),
		System: []brtypes.SystemContentBlock{
			&brtypes.SystemContentBlockMemberText{Value: system},
		},
		Messages: []brtypes.Message{
			{
				Role: brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: req.User},
				},
			},
		},
		InferenceConfig: inference,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	text := extractResponseText(resp)
	if text == "" {
		return nil, fmt.Errorf("empty response from Bedrock")
	}

	c.logger.Debug("Bedrock response",
		zap.String("model", c.modelID),
		zap.String("stop_reason", string(resp.StopReason)),
		zap.Int("length", len(text)))

	return &core.LLMResponse{
		Text:         text,
		ModelUsed:    c.modelID,
		ProcessingID: uuid.NewString(),
	}, nil
}

func extractResponseText(resp *bedrockruntime.ConverseOutput) string {
	if resp == nil || resp.Output == nil {
		return ""
	}
	output, ok := resp.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, block := range output.Value.Content {
		if text, ok := block.(*brtypes.ContentBlockMemberText); ok {
			b.WriteString(text.Value)
		}
	}
	return strings.TrimSpace(b.String())
}
