package di

import (
	"context"
	"testing"

	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/mikey/llm-auto-responder/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentials(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GEMINI_API_KEY", "AUTOREPLY_GEMINI_API_KEY",
		"OPENAI_API_KEY", "AUTOREPLY_OPENAI_API_KEY",
		"EMAIL_ADDRESS", "AUTOREPLY_ACCOUNT_ADDRESS",
		"EMAIL_PASSWORD", "AUTOREPLY_ACCOUNT_PASSWORD",
		"AUTOREPLY_LLM_PROVIDER", "AUTOREPLY_SENDER_TRANSPORT",
	} {
		t.Setenv(name, "")
	}
}

func TestBuildContainerWithoutCredentials(t *testing.T) {
	clearCredentials(t)

	container, err := BuildContainer()
	require.NoError(t, err)

	err = container.Invoke(func(service *core.AutoReplyService, classifier *core.Classifier) {
		assert.NotNil(t, service)
		assert.False(t, classifier.Configured())

		report := service.Run(context.Background())
		assert.Equal(t, core.StateDone, report.Final())
		assert.Equal(t, []core.RunState{core.StateStart, core.StateDone}, report.States)
		assert.False(t, report.Sent)
	})
	require.NoError(t, err)
}

func TestBuildPreviewContainer(t *testing.T) {
	clearCredentials(t)

	container, err := BuildPreviewContainer(&PreviewFlags{Provider: "openai", Model: "gpt-test", Temperature: 0.5})
	require.NoError(t, err)

	err = container.Invoke(func(cfg *config.Config, selector *core.ReplySelector, tp *utils.TextProcessor) {
		assert.NotNil(t, tp)
		assert.Equal(t, "openai", cfg.GetLLM().Provider)
		assert.Equal(t, "gpt-test", cfg.GetOpenAI().ModelName)
		assert.InDelta(t, 0.5, cfg.GetOpenAI().Temperature, 1e-6)
		assert.Equal(t, config.DefaultSafeReply, selector.SafeDefault())
	})
	require.NoError(t, err)
}

func TestApplyPreviewFlagsKeepsConfiguredValues(t *testing.T) {
	cfg := config.NewFromViper(config.NewEmptyViper())
	applyPreviewFlags(cfg, &PreviewFlags{Temperature: -1})

	assert.Equal(t, "gemini", cfg.GetLLM().Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GetGemini().ModelName)
	assert.InDelta(t, 0.3, cfg.GetGemini().Temperature, 1e-6)
}

func TestApplyPreviewFlagsBedrockModel(t *testing.T) {
	cfg := config.NewFromViper(config.NewEmptyViper())
	applyPreviewFlags(cfg, &PreviewFlags{Provider: "bedrock", Model: "anthropic.test", Temperature: -1})

	assert.Equal(t, "anthropic.test", cfg.GetBedrock().ModelID)
}
