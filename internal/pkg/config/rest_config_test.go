//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRestConfigYAML = `
port: "9090"
allow_origins:
  - "http://localhost:3000"
logger:
  log_level: debug
  log_type: console
database:
  type: sqlite
  dsn: ":memory:"
auth:
  jwt_public_key: "-----BEGIN PUBLIC KEY-----"
paddle:
  client_token_sandbox: test_token
  sandbox_price_ids:
    starter_monthly: pri_starter_m
ai_webhook:
  url: "https://hooks.example.com/convert"
  ingest_secret: "0123456789abcdef"
  timeout: 5s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rest-app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInitializeRestConfig_FromFile(t *testing.T) {
	path := writeConfig(t, testRestConfigYAML)

	cfg, err := InitializeRestConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowOrigins)
	assert.Equal(t, LogLevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, "pri_starter_m", cfg.Paddle.SandboxPriceIDs.StarterMonthly)
	assert.Equal(t, DefaultProductionHosts, cfg.Paddle.ProductionHosts)
	assert.Equal(t, 5*time.Second, cfg.AIWebhook.Timeout)
}

func TestInitializeRestConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, testRestConfigYAML)
	t.Setenv("GENNO_PORT", "7070")
	t.Setenv("GENNO_PADDLE_WEBHOOK_SECRET", "pdl_secret")

	cfg, err := InitializeRestConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "pdl_secret", cfg.Paddle.WebhookSecret)
}

func TestInitializeRestConfig_EnvOnly(t *testing.T) {
	t.Setenv("GENNO_DATABASE_TYPE", SqliteDbType)
	t.Setenv("GENNO_DATABASE_DSN", ":memory:")
	t.Setenv("GENNO_AUTH_JWT_PUBLIC_KEY", "-----BEGIN PUBLIC KEY-----")
	t.Setenv("GENNO_AI_WEBHOOK_URL", "https://hooks.example.com/convert")
	t.Setenv("GENNO_AI_WEBHOOK_INGEST_SECRET", "0123456789abcdef")

	cfg, err := InitializeRestConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
	assert.Equal(t, "genno-rest-api", cfg.Logger.Service)
	assert.Equal(t, DefaultAIWebhookTimeout, cfg.AIWebhook.EffectiveTimeout())
}

func TestInitializeRestConfig_Invalid(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
database:
  type: mysql
  dsn: "x"
`)

	_, err := InitializeRestConfig(path)
	require.Error(t, err)
}

func TestLoadDatabaseSettings(t *testing.T) {
	path := writeConfig(t, `
database:
  type: sqlite
  dsn: "genno.db"
`)

	loggerSettings, dbSettings, err := LoadDatabaseSettings(path)
	require.NoError(t, err)
	assert.Equal(t, LogTypeConsole, loggerSettings.LogType)
	assert.Equal(t, "genno.db", dbSettings.DSN)
}

func TestRestConfig_ResolveCallbackURL(t *testing.T) {
	cfg := &RestConfig{PublicBaseURL: "https://genno.io/"}
	cfg.ResolveCallbackURL()
	assert.Equal(t, "https://genno.io/api/v1/blogs/ingest", cfg.AIWebhook.CallbackURL)

	cfg = &RestConfig{PublicBaseURL: "https://genno.io", AIWebhook: AIWebhookSettings{CallbackURL: "https://cb.example.com"}}
	cfg.ResolveCallbackURL()
	assert.Equal(t, "https://cb.example.com", cfg.AIWebhook.CallbackURL)

	cfg = &RestConfig{}
	cfg.ResolveCallbackURL()
	assert.Empty(t, cfg.AIWebhook.CallbackURL)
}
