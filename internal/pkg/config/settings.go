package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigPath is used when no CONFIG_PATH environment variable is set
const DefaultConfigPath = "configs/wallet-app.yaml"

// AppSettings aggregates all configuration sections of the wallet service
type AppSettings struct {
	Server   ServerSettings   `mapstructure:"server"`
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Auth     AuthSettings     `mapstructure:"auth"`
	Paystack PaystackSettings `mapstructure:"paystack"`
	Redis    RedisSettings    `mapstructure:"redis"`
}

// Validate checks all configuration sections
func (s *AppSettings) Validate() error {
	if err := s.Server.Validate(); err != nil {
		return err
	}
	if err := s.Database.Validate(); err != nil {
		return err
	}
	if err := s.Logger.Validate(); err != nil {
		return err
	}
	if err := s.Auth.Validate(); err != nil {
		return err
	}
	if err := s.Paystack.Validate(); err != nil {
		return err
	}
	if err := s.Redis.Validate(); err != nil {
		return err
	}
	return nil
}

// LoadAppSettings reads settings from the YAML file at configPath with
// environment variable overrides (e.g. AUTH_JWT_SECRET overrides auth.jwt_secret).
// A .env file in the working directory is loaded first when present.
func LoadAppSettings(configPath string) (*AppSettings, error) {
	// .env is optional; ignore absence but not parse failures
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	settings := &AppSettings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.app_name", "Wallet Service")
	v.SetDefault("server.app_version", "0.1.0")
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.cors_allowed_origins", "")
	v.SetDefault("server.read_header_timeout_secs", 10)
	v.SetDefault("server.shutdown_timeout_secs", 15)

	v.SetDefault("database.type", PostgresDbType)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.db_name", "wallet_service")

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_expire_minutes", 30)
	v.SetDefault("auth.refresh_token_expire_days", 7)
	v.SetDefault("auth.google_client_id", "")
	v.SetDefault("auth.google_client_secret", "")
	v.SetDefault("auth.google_redirect_uri", "")

	v.SetDefault("paystack.secret_key", "")
	v.SetDefault("paystack.public_key", "")
	v.SetDefault("paystack.base_url", "https://api.paystack.co")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.connect_timeout_secs", 5)
}
