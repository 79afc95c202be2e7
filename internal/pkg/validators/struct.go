// Package validators holds the custom validator tags shared by domain entities
// and a helper that validates a struct with them registered.
package validators

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Struct validates s with the custom tags registered and flattens field errors into one message
func Struct(s any) error {
	validate := validator.New()

	if err := Register(validate); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
