package commands

import (
	"fmt"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
)

// setupLogger configures the console logger shared by all CLI command handlers.
func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}
