package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/mikey/llm-auto-responder/internal/core"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// contentGenerator is the subset of *genai.GenerativeModel used by the client
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient is an implementation of the LLMClient interface using Google Gemini
type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	generate  contentGenerator
	modelName string
	logger    *zap.Logger
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	ctx context.Context,
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	logger *zap.Logger,
) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}
	model.ResponseMIMEType = "application/json"

	return &GeminiClient{
		client:    client,
		model:     model,
		generate:  model,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Complete sends the request with the schema enforced through the response schema
func (c *GeminiClient) Complete(ctx context.Context, req *core.LLMRequest) (*core.LLMResponse, error) {
	if c.model != nil {
		// Single-shot process, the model is configured per request
		c.model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
		c.model.ResponseSchema = responseSchema(req.Schema)
	}

	resp, err := c.generate.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	c.logger.Debug("Gemini response",
		zap.String("model", c.modelName),
		zap.Int("length", len(text)))

	return &core.LLMResponse{
		Text:         text,
		ModelUsed:    c.modelName,
		ProcessingID: uuid.NewString(),
	}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}

func responseSchema(fields []core.SchemaField) *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(fields)),
	}
	for _, f := range fields {
		t := genai.TypeString
		if f.Type == core.FieldBoolean {
			t = genai.TypeBoolean
		}
		schema.Properties[f.Name] = &genai.Schema{Type: t, Description: f.Description}
		schema.Required = append(schema.Required, f.Name)
	}
	return schema
}
