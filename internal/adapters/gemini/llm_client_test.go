package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	resp  *genai.GenerateContentResponse
	err   error
	parts []genai.Part
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.parts = parts
	return f.resp, f.err
}

func candidate(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func TestCompleteJoinsTextParts(t *testing.T) {
	gen := &fakeGenerator{resp: candidate(genai.Text(`{"is_technical":`), genai.Text(` true}`))}
	c := &GeminiClient{generate: gen, modelName: "gemini-2.5-flash", logger: zap.NewNop()}

	resp, err := c.Complete(context.Background(), &core.LLMRequest{System: "sys", User: "hello"})
	require.NoError(t, err)

	assert.Equal(t, `{"is_technical": true}`, resp.Text)
	assert.Equal(t, "gemini-2.5-flash", resp.ModelUsed)
	assert.NotEmpty(t, resp.ProcessingID)
	assert.Equal(t, []genai.Part{genai.Text("hello")}, gen.parts)
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"api error", &fakeGenerator{err: errors.New("quota exceeded")}},
		{"no candidates", &fakeGenerator{resp: &genai.GenerateContentResponse{}}},
		{"nil content", &fakeGenerator{resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &GeminiClient{generate: tt.gen, logger: zap.NewNop()}
			_, err := c.Complete(context.Background(), &core.LLMRequest{User: "x"})
			assert.Error(t, err)
		})
	}
}

func TestResponseSchema(t *testing.T) {
	schema := responseSchema(core.ClassificationFields)

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Len(t, schema.Required, 5)
	assert.Equal(t, genai.TypeBoolean, schema.Properties["is_technical"].Type)
	assert.Equal(t, genai.TypeBoolean, schema.Properties["request_meeting"].Type)
	assert.Equal(t, genai.TypeString, schema.Properties["meeting_suggestion_draft"].Type)
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("gemini.api_key", "")
	f := NewFactory(config.NewFromViper(v), zap.NewNop())

	_, err := f.CreateClient(context.Background())
	assert.Error(t, err)
}
