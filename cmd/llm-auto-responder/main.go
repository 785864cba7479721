package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mikey/llm-auto-responder/internal/core"
	"github.com/mikey/llm-auto-responder/internal/di"
	"go.uber.org/zap"
)

func main() {
	// A missing .env file is fine, the environment may already be populated
	_ = godotenv.Load()

	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run processes at most one unread message. Its outcome never changes the exit code.
func run(
	logger *zap.Logger,
	service *core.AutoReplyService,
	llmClient core.LLMClient,
) {
	defer logger.Sync()

	report := service.Run(context.Background())

	fields := []zap.Field{
		zap.String("run_id", report.RunID),
		zap.String("final_state", string(report.Final())),
		zap.Bool("sent", report.Sent),
		zap.Bool("classification_failed", report.ClassificationFailed),
	}
	if report.Recipient != "" {
		fields = append(fields, zap.String("recipient", report.Recipient))
	}
	logger.Info("Run complete", fields...)

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
}
