// Package users defines the user and refresh token entities together with
// the contracts for authentication, token issuance and persistence.
package users

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// User represents an account created through Google sign-in.
// Every user owns exactly one wallet.
type User struct {
	ID        string    `validate:"required,uuid4"`
	Email     string    `validate:"required,email"`
	GoogleID  string    `validate:"required"`
	Name      string    `validate:"required"`
	CreatedAt time.Time `validate:"required"`
	UpdatedAt time.Time
}

// Validate for validating User struct
func (u *User) Validate() error {
	validate := validator.New()

	err := validate.Struct(u)
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
