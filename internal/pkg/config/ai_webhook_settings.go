package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultAIWebhookTimeout bounds a single call to the AI webhook
const DefaultAIWebhookTimeout = 30 * time.Second

// AIWebhookSettings configures the external video-to-blog AI service.
// IngestSecret is the shared secret the service sends back with finished blogs.
type AIWebhookSettings struct {
	URL          string        `mapstructure:"url" validate:"required,url"`
	CallbackURL  string        `mapstructure:"callback_url" validate:"omitempty,url"`
	IngestSecret string        `mapstructure:"ingest_secret" validate:"required,min=16"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Validate checks that all fields in AIWebhookSettings are valid
func (s *AIWebhookSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AIWebhookSettings: %w", err)
	}

	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	return nil
}

// EffectiveTimeout returns the configured timeout or the default
func (s *AIWebhookSettings) EffectiveTimeout() time.Duration {
	if s.Timeout == 0 {
		return DefaultAIWebhookTimeout
	}
	return s.Timeout
}
