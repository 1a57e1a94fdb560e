package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RedisSettings holds configuration settings for the Redis connection.
// Rate limiting and OAuth state storage require Redis; when disabled,
// rate-limited routes reject nothing and login state is not validated.
type RedisSettings struct {
	Enabled            bool   `mapstructure:"enabled"`
	URL                string `mapstructure:"url" validate:"required_if=Enabled true"`
	ConnectTimeoutSecs int    `mapstructure:"connect_timeout_secs" validate:"min=0,max=30"`
}

// Validate checks that all fields in RedisSettings are valid
func (s *RedisSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for RedisSettings: %w", err)
	}

	return nil
}
