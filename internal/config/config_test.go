package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "gemini", cfg.GetLLM().Provider)
	assert.Equal(t, 60*time.Second, cfg.GetLLM().Timeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.GetGemini().ModelName)
	assert.InDelta(t, 0.3, cfg.GetGemini().Temperature, 0.0001)

	imapCfg := cfg.GetIMAP()
	assert.Equal(t, "imap.gmail.com", imapCfg.Server)
	assert.Equal(t, 993, imapCfg.Port)
	assert.Equal(t, "INBOX", imapCfg.Mailbox)

	smtpCfg := cfg.GetSMTP()
	assert.Equal(t, "smtp.gmail.com", smtpCfg.Server)
	assert.Equal(t, 465, smtpCfg.Port)
	assert.Equal(t, "implicit", smtpCfg.TLS)

	assert.Equal(t, "smtp", cfg.GetSender().Transport)
	assert.Equal(t, DefaultSafeReply, cfg.GetReply().SafeDefault)
	assert.Equal(t, DefaultSignature, cfg.GetPersona().Signature)
}

func TestInvalidDurationFallsBack(t *testing.T) {
	v := NewEmptyViper()
	v.Set("imap.timeout", "soon")
	cfg := NewFromViper(v)

	assert.Equal(t, 30*time.Second, cfg.GetIMAP().Timeout)
}

func TestEmptySafeDefaultFallsBack(t *testing.T) {
	v := NewEmptyViper()
	v.Set("reply.safe_default", "")
	cfg := NewFromViper(v)

	assert.Equal(t, DefaultSafeReply, cfg.GetReply().SafeDefault)
}

func TestLegacyEnvironmentNames(t *testing.T) {
	t.Setenv("EMAIL_ADDRESS", "agent@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("GEMINI_API_KEY", "legacy-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "agent@example.com", cfg.GetAccount().Address)
	assert.Equal(t, "app-password", cfg.GetAccount().Password)
	assert.Equal(t, "legacy-key", cfg.GetGemini().APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.GetGemini().ModelName)
}

func TestPrefixedEnvironmentWins(t *testing.T) {
	t.Setenv("EMAIL_ADDRESS", "legacy@example.com")
	t.Setenv("AUTOREPLY_ACCOUNT_ADDRESS", "prefixed@example.com")
	t.Setenv("AUTOREPLY_SENDER_TRANSPORT", "ses")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "prefixed@example.com", cfg.GetAccount().Address)
	assert.Equal(t, "ses", cfg.GetSender().Transport)
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
llm:
  provider: openai
  timeout: 15s
openai:
  model_name: gpt-4o
reply:
  safe_default: "Thanks, talk soon."
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := NewFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.GetLLM().Provider)
	assert.Equal(t, 15*time.Second, cfg.GetLLM().Timeout)
	assert.Equal(t, "gpt-4o", cfg.GetOpenAI().ModelName)
	assert.Equal(t, "Thanks, talk soon.", cfg.GetReply().SafeDefault)
	// untouched keys keep their defaults
	assert.Equal(t, "imap.gmail.com", cfg.GetIMAP().Server)
}

func TestNewFromFileMissing(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
