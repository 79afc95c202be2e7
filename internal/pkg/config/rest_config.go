package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding file settings
const EnvPrefix = "GENNO"

// IngestPath is where the AI service delivers finished blogs
const IngestPath = "/api/v1/blogs/ingest"

// RestConfig is the complete configuration of the REST API process
type RestConfig struct {
	Port          string            `mapstructure:"port"`
	PublicBaseURL string            `mapstructure:"public_base_url"`
	AllowOrigins  []string          `mapstructure:"allow_origins"`
	Logger        LoggerSettings    `mapstructure:"logger"`
	Database      DatabaseSettings  `mapstructure:"database"`
	Auth          AuthSettings      `mapstructure:"auth"`
	Paddle        PaddleSettings    `mapstructure:"paddle"`
	AIWebhook     AIWebhookSettings `mapstructure:"ai_webhook"`
}

// keys that may be supplied only through the environment
var envOnlyKeys = []string{
	"port",
	"public_base_url",
	"database.type",
	"database.dsn",
	"database.name",
	"auth.jwt_public_key",
	"auth.webhook_secret",
	"paddle.webhook_secret",
	"paddle.client_token",
	"paddle.client_token_sandbox",
	"ai_webhook.url",
	"ai_webhook.callback_url",
	"ai_webhook.ingest_secret",
}

// Validate checks every section of the configuration
func (c *RestConfig) Validate() error {
	validate := validator.New()
	if err := validate.Var(c.Port, "required,numeric"); err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}

	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Paddle.Validate(); err != nil {
		return err
	}
	if err := c.AIWebhook.Validate(); err != nil {
		return err
	}
	return nil
}

// ResolveCallbackURL derives the AI callback from the public base URL when none is configured
func (c *RestConfig) ResolveCallbackURL() {
	if c.AIWebhook.CallbackURL != "" || c.PublicBaseURL == "" {
		return
	}
	c.AIWebhook.CallbackURL = strings.TrimRight(c.PublicBaseURL, "/") + IngestPath
}

// InitializeRestConfig reads the YAML file at path, applies environment overrides and validates the result.
// A missing file is not an error when the environment supplies every required setting.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	cfg := &RestConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.ResolveCallbackURL()

	return cfg, nil
}

// LoadDatabaseSettings reads only the logger and database sections, for tools that do not serve HTTP
func LoadDatabaseSettings(path string) (*LoggerSettings, *DatabaseSettings, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, nil, err
	}

	cfg := &RestConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Logger.Validate(); err != nil {
		return nil, nil, err
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg.Logger, &cfg.Database, nil
}

func newViper(path string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.service", "genno-rest-api")
	v.SetDefault("paddle.production_hosts", DefaultProductionHosts)
	v.SetDefault("ai_webhook.timeout", DefaultAIWebhookTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	return v, nil
}
