package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AuthSettings holds configuration settings for JWT issuance and Google OAuth
type AuthSettings struct {
	JWTSecret                string `mapstructure:"jwt_secret" validate:"required,min=32"`
	AccessTokenExpireMinutes int    `mapstructure:"access_token_expire_minutes" validate:"min=1,max=1440"`
	RefreshTokenExpireDays   int    `mapstructure:"refresh_token_expire_days" validate:"min=1,max=90"`
	GoogleClientID           string `mapstructure:"google_client_id" validate:"required"`
	GoogleClientSecret       string `mapstructure:"google_client_secret" validate:"required"`
	GoogleRedirectURI        string `mapstructure:"google_redirect_uri" validate:"required,url"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}

	return nil
}
