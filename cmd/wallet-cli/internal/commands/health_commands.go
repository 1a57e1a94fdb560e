package commands

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// HealthCommandHandler encapsulates logic for probing a running service via CLI.
type HealthCommandHandler struct {
	logger logger.Logger
}

// NewHealthCommandHandler initializes and returns a HealthCommandHandler instance with
// a configured logger.
func NewHealthCommandHandler() (*HealthCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &HealthCommandHandler{
		logger: loggerInstance,
	}, nil
}

// HealthcheckCmd probes the service health endpoint. The process exits
// non-zero when the endpoint is unreachable or unhealthy, so the command
// can back a container health check.
func (commandHandler *HealthCommandHandler) HealthcheckCmd(cmd *cobra.Command, _ []string) {
	url, err := cmd.Flags().GetString("url")
	if err != nil {
		commandHandler.logger.Error("invalid url flag ", err)
		os.Exit(1)
	}
	timeoutSecs, err := cmd.Flags().GetInt("timeout-secs")
	if err != nil {
		commandHandler.logger.Error("invalid timeout-secs flag ", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		commandHandler.logger.Error("health check failed ", err)
		os.Exit(1)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			commandHandler.logger.Error("failed to close response body ", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		commandHandler.logger.Error("health check returned status ", resp.StatusCode)
		os.Exit(1)
	}
	commandHandler.logger.Info("Service is healthy: ", url)
}

// InitHealthCommands registers health-probe commands
func InitHealthCommands(rootCmd *cobra.Command) error {
	handler, err := NewHealthCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create health command handler %w", err)
	}

	var healthcheckCmd = &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe the service health endpoint, exiting non-zero on failure",
		Run:   handler.HealthcheckCmd,
	}
	healthcheckCmd.Flags().StringP("url", "", "http://localhost:8000/health", "Health endpoint URL")
	healthcheckCmd.Flags().IntP("timeout-secs", "", 5, "Request timeout in seconds")
	rootCmd.AddCommand(healthcheckCmd)

	return nil
}
