package config

import "time"

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
	Timeout  time.Duration
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// AccountConfig holds the mailbox credentials shared by the reader and the SMTP sender
type AccountConfig struct {
	Address  string
	Password string
}

// IMAPConfig represents the configuration of the inbound mailbox
type IMAPConfig struct {
	Server  string
	Port    int
	Mailbox string
	Timeout time.Duration
}

// SMTPConfig represents the configuration of the outbound SMTP relay
type SMTPConfig struct {
	Server  string
	Port    int
	TLS     string
	Timeout time.Duration
}

// SenderConfig selects the outbound transport
type SenderConfig struct {
	Transport string
	FromName  string
	Timeout   time.Duration
}

// SESConfig represents the configuration for Amazon SES
type SESConfig struct {
	Region string
}

// SendGridConfig represents the configuration for SendGrid
type SendGridConfig struct {
	APIKey string
	Host   string
}

// PersonaConfig holds the fixed instructions and knowledge given to the model
type PersonaConfig struct {
	Instructions            string
	Knowledge               string
	ClassificationCondition string
	Signature               string
}

// ReplyConfig holds reply selection settings
type ReplyConfig struct {
	SafeDefault string
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string
	Format string
}

// durationOr parses key as a duration and falls back when it is unset or invalid.
func (c *Config) durationOr(key string, fallback time.Duration) time.Duration {
	d, err := c.GetDuration(key)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
		Timeout:  c.durationOr("llm.timeout", 60*time.Second),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetAccount returns the mailbox account credentials
func (c *Config) GetAccount() AccountConfig {
	return AccountConfig{
		Address:  c.GetString("account.address"),
		Password: c.GetString("account.password"),
	}
}

// GetIMAP returns the IMAP configuration
func (c *Config) GetIMAP() IMAPConfig {
	return IMAPConfig{
		Server:  c.GetString("imap.server"),
		Port:    c.GetInt("imap.port"),
		Mailbox: c.GetString("imap.mailbox"),
		Timeout: c.durationOr("imap.timeout", 30*time.Second),
	}
}

// GetSMTP returns the SMTP configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		Server:  c.GetString("smtp.server"),
		Port:    c.GetInt("smtp.port"),
		TLS:     c.GetString("smtp.tls"),
		Timeout: c.durationOr("smtp.timeout", 30*time.Second),
	}
}

// GetSender returns the outbound transport selection
func (c *Config) GetSender() SenderConfig {
	return SenderConfig{
		Transport: c.GetString("sender.transport"),
		FromName:  c.GetString("sender.from_name"),
		Timeout:   c.durationOr("sender.timeout", 30*time.Second),
	}
}

// GetSES returns the SES configuration
func (c *Config) GetSES() SESConfig {
	return SESConfig{
		Region: c.GetString("ses.region"),
	}
}

// GetSendGrid returns the SendGrid configuration
func (c *Config) GetSendGrid() SendGridConfig {
	return SendGridConfig{
		APIKey: c.GetString("sendgrid.api_key"),
		Host:   c.GetString("sendgrid.host"),
	}
}

// GetPersona returns the persona configuration
func (c *Config) GetPersona() PersonaConfig {
	return PersonaConfig{
		Instructions:            c.GetString("persona.instructions"),
		Knowledge:               c.GetString("persona.knowledge"),
		ClassificationCondition: c.GetString("persona.classification_condition"),
		Signature:               c.GetString("persona.signature"),
	}
}

// GetReply returns the reply configuration
func (c *Config) GetReply() ReplyConfig {
	safe := c.GetString("reply.safe_default")
	if safe == "" {
		safe = DefaultSafeReply
	}
	return ReplyConfig{SafeDefault: safe}
}

// GetLogging returns the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:  c.GetString("logging.level"),
		Format: c.GetString("logging.format"),
	}
}
