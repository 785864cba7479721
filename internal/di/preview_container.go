package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-auto-responder/internal/config"
	"github.com/mikey/llm-auto-responder/internal/logging"
)

// PreviewFlags contains the command line flags of the reply preview tool
type PreviewFlags struct {
	// LLM provider overrides
	Provider    string
	Model       string
	Temperature float64

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParsePreviewFlags parses command line flags and returns a PreviewFlags struct
func ParsePreviewFlags() *PreviewFlags {
	flags := &PreviewFlags{}

	flag.StringVar(&flags.Provider, "provider", "", "LLM provider override (gemini, openai, bedrock)")
	flag.StringVar(&flags.Model, "model", "", "Model name override for the selected provider")
	flag.Float64Var(&flags.Temperature, "temperature", -1, "Temperature override (negative keeps the configured value)")

	flag.StringVar(&flags.InputFile, "file", "", "Input email file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file")

	flag.Parse()
	return flags
}

// BuildPreviewContainer creates a container for the preview tool. It wires
// classification and reply selection but no mailbox reader or sender.
func BuildPreviewContainer(flags *PreviewFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *PreviewFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *PreviewFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *PreviewFlags, logger *zap.Logger) (*config.Config, error) {
		var cfg *config.Config
		var err error
		if flags.ConfigFile != "" {
			cfg, err = config.NewFromFile(flags.ConfigFile)
		} else {
			cfg, err = config.New()
		}
		if err != nil {
			return nil, err
		}
		if used := cfg.GetViper().ConfigFileUsed(); used != "" {
			logger.Info("Loaded configuration from file", zap.String("file", used))
		}
		applyPreviewFlags(cfg, flags)
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	if err := provideClassification(container); err != nil {
		return nil, err
	}

	return container, nil
}

// applyPreviewFlags overrides configuration values with explicitly set flags
func applyPreviewFlags(cfg *config.Config, flags *PreviewFlags) {
	v := cfg.GetViper()

	if flags.Provider != "" {
		v.Set("llm.provider", flags.Provider)
	}
	provider := v.GetString("llm.provider")

	if flags.Model != "" {
		switch provider {
		case "bedrock":
			v.Set("bedrock.model_id", flags.Model)
		default:
			v.Set(provider+".model_name", flags.Model)
		}
	}
	if flags.Temperature >= 0 {
		v.Set(provider+".temperature", flags.Temperature)
	}
}
