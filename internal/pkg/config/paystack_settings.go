package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PaystackSettings holds configuration settings for the Paystack payment gateway
type PaystackSettings struct {
	SecretKey string `mapstructure:"secret_key" validate:"required"`
	PublicKey string `mapstructure:"public_key"`
	BaseURL   string `mapstructure:"base_url" validate:"required,url"`
}

// Validate checks that all fields in PaystackSettings are valid
func (s *PaystackSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for PaystackSettings: %w", err)
	}

	return nil
}
