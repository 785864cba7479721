package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mikey/llm-auto-responder/internal/adapters/mailbox"
	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/mikey/llm-auto-responder/internal/di"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	flags := di.ParsePreviewFlags()

	container, err := di.BuildPreviewContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(func(
		logger *zap.Logger,
		cfg *config.Config,
		classifier *core.Classifier,
		selector *core.ReplySelector,
		llmClient core.LLMClient,
	) error {
		defer logger.Sync()
		return preview(logger, cfg, classifier, selector, llmClient, flags.InputFile)
	}); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// preview prints the reply the responder would send for one message. It never
// touches a mailbox and never sends anything.
func preview(
	logger *zap.Logger,
	cfg *config.Config,
	classifier *core.Classifier,
	selector *core.ReplySelector,
	llmClient core.LLMClient,
	inputFile string,
) error {
	// Read email from file or stdin
	var emailReader io.Reader
	if inputFile != "" {
		file, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	raw, err := io.ReadAll(emailReader)
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	msg, err := mailbox.ParseMessage(raw)
	if err != nil {
		return fmt.Errorf("failed to parse email: %w", err)
	}

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", msg.SenderAddress)
	fmt.Printf("Subject: %s\n", msg.Subject)
	fmt.Printf("Body length: %d bytes\n", len(msg.Body))
	fmt.Printf("\n")

	fmt.Printf("=== Classification ===\n")
	fmt.Printf("Provider: %s\n", cfg.GetLLM().Provider)

	startTime := time.Now()
	result, err := classifier.TryClassify(context.Background(), msg)
	duration := time.Since(startTime)
	if err != nil {
		fmt.Printf("Unavailable: %v\n", err)
	} else {
		fmt.Printf("Meeting requested: %t\n", result.RequestMeeting)
		fmt.Printf("Technical: %t\n", result.IsTechnical)
		fmt.Printf("Model used: %s\n", result.ModelUsed)
	}
	fmt.Printf("Processing time: %v\n", duration)

	fmt.Printf("\n=== Reply ===\n")
	fmt.Printf("To: %s\n", msg.SenderAddress)
	fmt.Printf("Subject: %s%s\n\n", core.ReplyPrefix, msg.Subject)
	fmt.Println(selector.Select(result))

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}

	return nil
}
