package factory

import (
	"context"
	"fmt"

	"github.com/mikey/llm-auto-responder/internal/adapters/bedrock"
	"github.com/mikey/llm-auto-responder/internal/adapters/gemini"
	"github.com/mikey/llm-auto-responder/internal/adapters/openai"
	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/core"
	"go.uber.org/zap"
)

// LLMFactory creates LLM clients
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateLLMClient creates a new LLM client based on the configuration.
// A provider without credentials yields a nil client, which the classifier
// reports as unavailable on every run.
func (f *LLMFactory) CreateLLMClient(ctx context.Context) (core.LLMClient, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "gemini":
		if f.cfg.GetGemini().APIKey == "" {
			f.logger.Warn("Gemini API key not set, classification disabled")
			return nil, nil
		}
		client, err := gemini.NewFactory(f.cfg, f.logger).CreateClient(ctx)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "openai":
		if f.cfg.GetOpenAI().APIKey == "" {
			f.logger.Warn("OpenAI API key not set, classification disabled")
			return nil, nil
		}
		client, err := openai.NewFactory(f.cfg, f.logger).CreateClient()
		if err != nil {
			return nil, err
		}
		return client, nil
	case "bedrock":
		client, err := bedrock.NewFactory(f.cfg, f.logger).CreateClient(ctx)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}

// MaxBodySize returns the body truncation limit of the selected provider
func (f *LLMFactory) MaxBodySize() int {
	switch f.cfg.GetLLM().Provider {
	case "openai":
		return f.cfg.GetOpenAI().MaxBodySize
	case "bedrock":
		return f.cfg.GetBedrock().MaxBodySize
	default:
		return f.cfg.GetGemini().MaxBodySize
	}
}
