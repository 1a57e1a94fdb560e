package users

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// RefreshToken holds the hashed form of an opaque refresh token.
// The plaintext token is only ever returned to the client at login.
type RefreshToken struct {
	ID        string    `validate:"required,uuid4"`
	UserID    string    `validate:"required,uuid4"`
	TokenHash string    `validate:"required"`
	ExpiresAt time.Time `validate:"required"`
	Revoked   bool
	CreatedAt time.Time
}

// Validate for validating RefreshToken struct
func (t *RefreshToken) Validate() error {
	validate := validator.New()

	err := validate.Struct(t)
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

// IsValid reports whether the token is neither revoked nor expired.
func (t *RefreshToken) IsValid() bool {
	return !t.Revoked && time.Now().UTC().Before(t.ExpiresAt)
}
