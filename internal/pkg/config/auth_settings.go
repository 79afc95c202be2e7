package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AuthSettings holds the authentication provider settings.
// JWTPublicKey is the PEM encoded key session tokens are verified with.
type AuthSettings struct {
	JWTPublicKey      string   `mapstructure:"jwt_public_key" validate:"required"`
	AuthorizedParties []string `mapstructure:"authorized_parties"`
	WebhookSecret     string   `mapstructure:"webhook_secret" validate:"omitempty,startswith=whsec_"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}

	return nil
}
