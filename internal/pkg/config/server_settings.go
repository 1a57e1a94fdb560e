package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ServerSettings holds configuration settings for the HTTP server
type ServerSettings struct {
	Port                  string `mapstructure:"port" validate:"required"`
	AppName               string `mapstructure:"app_name" validate:"required"`
	AppVersion            string `mapstructure:"app_version" validate:"required"`
	BaseURL               string `mapstructure:"base_url" validate:"required,url"`
	CorsAllowedOrigins    string `mapstructure:"cors_allowed_origins"`
	ReadHeaderTimeoutSecs int    `mapstructure:"read_header_timeout_secs" validate:"min=1,max=60"`
	ShutdownTimeoutSecs   int    `mapstructure:"shutdown_timeout_secs" validate:"min=1,max=120"`
}

// Validate checks that all fields in ServerSettings are valid
func (s *ServerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ServerSettings: %w", err)
	}

	return nil
}

// AllowedOrigins splits the configured comma-separated origin list.
// An empty setting means all origins are allowed.
func (s *ServerSettings) AllowedOrigins() []string {
	if strings.TrimSpace(s.CorsAllowedOrigins) == "" {
		return []string{"*"}
	}

	parts := strings.Split(s.CorsAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
