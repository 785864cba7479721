package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/llm-auto-responder/")
	v.AddConfigPath("$HOME/.llm-auto-responder")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("AUTOREPLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromFile creates a configuration instance from an explicit config file path
func NewFromFile(path string) (*Config, error) {
	v := NewEmptyViper()
	v.SetConfigFile(path)
	v.SetEnvPrefix("AUTOREPLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// bindLegacyEnv keeps the unprefixed variable names used by existing deployments working.
// The prefixed AUTOREPLY_* name wins when both are set.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"gemini.api_key":    {"AUTOREPLY_GEMINI_API_KEY", "GEMINI_API_KEY"},
		"gemini.model_name": {"AUTOREPLY_GEMINI_MODEL_NAME", "GEMINI_MODEL"},
		"openai.api_key":    {"AUTOREPLY_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"account.address":   {"AUTOREPLY_ACCOUNT_ADDRESS", "EMAIL_ADDRESS"},
		"account.password":  {"AUTOREPLY_ACCOUNT_PASSWORD", "EMAIL_PASSWORD"},
		"sendgrid.api_key":  {"AUTOREPLY_SENDGRID_API_KEY", "SENDGRID_API_KEY"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}
	return nil
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM provider defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.timeout", "60s")

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-2.5-flash")
	v.SetDefault("gemini.max_tokens", 2048)
	v.SetDefault("gemini.temperature", 0.3)
	v.SetDefault("gemini.top_p", 0.95)
	v.SetDefault("gemini.max_body_size", 8192)

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model_name", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 2048)
	v.SetDefault("openai.temperature", 0.3)
	v.SetDefault("openai.top_p", 0.95)
	v.SetDefault("openai.max_body_size", 8192)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-3-haiku-20240307-v1:0")
	v.SetDefault("bedrock.max_tokens", 2048)
	v.SetDefault("bedrock.temperature", 0.3)
	v.SetDefault("bedrock.top_p", 0.95)
	v.SetDefault("bedrock.max_body_size", 8192)

	// Mailbox account shared by IMAP and SMTP
	v.SetDefault("account.address", "")
	v.SetDefault("account.password", "")

	// IMAP defaults
	v.SetDefault("imap.server", "imap.gmail.com")
	v.SetDefault("imap.port", 993)
	v.SetDefault("imap.mailbox", "INBOX")
	v.SetDefault("imap.timeout", "30s")

	// Outbound defaults
	v.SetDefault("sender.transport", "smtp")
	v.SetDefault("sender.from_name", "")
	v.SetDefault("sender.timeout", "30s")
	v.SetDefault("smtp.server", "smtp.gmail.com")
	v.SetDefault("smtp.port", 465)
	v.SetDefault("smtp.tls", "implicit")
	v.SetDefault("smtp.timeout", "30s")
	v.SetDefault("ses.region", "us-east-1")
	v.SetDefault("sendgrid.api_key", "")
	v.SetDefault("sendgrid.host", "https://api.sendgrid.com")

	// Persona and static knowledge
	v.SetDefault("persona.instructions", DefaultPersonaInstructions)
	v.SetDefault("persona.knowledge", DefaultKnowledge)
	v.SetDefault("persona.classification_condition", DefaultClassificationCondition)
	v.SetDefault("persona.signature", DefaultSignature)

	// Reply defaults
	v.SetDefault("reply.safe_default", DefaultSafeReply)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
