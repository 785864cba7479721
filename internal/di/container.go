package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/mikey/llm-auto-responder/internal/factory"
	"github.com/mikey/llm-auto-responder/internal/logging"
	"github.com/mikey/llm-auto-responder/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideClassification(container); err != nil {
		return nil, err
	}

	// Register mailbox factory, reader and sender
	if err := container.Provide(factory.NewMailboxFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.MailboxFactory) core.MailReader {
		return f.CreateReader()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.MailboxFactory) (core.MailSender, error) {
		return f.CreateSender(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register auto-reply workflow
	if err := container.Provide(func(
		reader core.MailReader,
		classifier *core.Classifier,
		selector *core.ReplySelector,
		sender core.MailSender,
		logger *zap.Logger,
	) *core.AutoReplyService {
		return core.NewAutoReplyService(reader, classifier, selector, sender, logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideClassification registers everything between the raw message and the
// selected reply. Config and logger must already be provided.
func provideClassification(container *dig.Container) error {
	// Register LLM factory
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient(context.Background())
	}); err != nil {
		return err
	}

	// Register prompt builder
	if err := container.Provide(func(
		cfg *config.Config,
		f *factory.LLMFactory,
		tp *utils.TextProcessor,
	) *core.PromptBuilder {
		persona := cfg.GetPersona()
		return core.NewPromptBuilder(core.Persona{
			Instructions:            persona.Instructions,
			Knowledge:               persona.Knowledge,
			ClassificationCondition: persona.ClassificationCondition,
			Signature:               persona.Signature,
		}, tp, f.MaxBodySize())
	}); err != nil {
		return err
	}

	// Register classifier
	if err := container.Provide(func(
		cfg *config.Config,
		client core.LLMClient,
		prompts *core.PromptBuilder,
		logger *zap.Logger,
	) *core.Classifier {
		return core.NewClassifier(client, prompts, cfg.GetLLM().Timeout, logger)
	}); err != nil {
		return err
	}

	// Register reply selector
	if err := container.Provide(func(cfg *config.Config) (*core.ReplySelector, error) {
		return core.NewReplySelector(cfg.GetReply().SafeDefault)
	}); err != nil {
		return err
	}

	return nil
}
