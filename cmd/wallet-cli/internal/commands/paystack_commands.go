package commands

import (
	"fmt"
	"os"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/connector"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// PaystackCommandHandler encapsulates logic for querying the payment gateway via CLI.
type PaystackCommandHandler struct {
	logger logger.Logger
}

// NewPaystackCommandHandler initializes and returns a PaystackCommandHandler instance with
// a configured logger.
func NewPaystackCommandHandler() (*PaystackCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &PaystackCommandHandler{
		logger: loggerInstance,
	}, nil
}

// VerifyTransactionCmd fetches the gateway's state of a charge by reference
func (commandHandler *PaystackCommandHandler) VerifyTransactionCmd(cmd *cobra.Command, _ []string) {
	reference, err := cmd.Flags().GetString("reference")
	if err != nil {
		commandHandler.logger.Error("invalid reference flag ", err)
		return
	}
	secretKey, err := cmd.Flags().GetString("secret-key")
	if err != nil {
		commandHandler.logger.Error("invalid secret-key flag ", err)
		return
	}
	if secretKey == "" {
		secretKey = os.Getenv("PAYSTACK_SECRET_KEY")
	}
	if secretKey == "" {
		commandHandler.logger.Error("paystack secret key must be provided via --secret-key or PAYSTACK_SECRET_KEY")
		return
	}
	baseURL, err := cmd.Flags().GetString("base-url")
	if err != nil {
		commandHandler.logger.Error("invalid base-url flag ", err)
		return
	}

	settings := &config.PaystackSettings{
		SecretKey: secretKey,
		BaseURL:   baseURL,
	}
	// The callback URL only matters for initializing charges, not verification
	gateway, err := connector.NewPaystackConnector(settings, "", commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	txn, err := gateway.VerifyTransaction(cmd.Context(), reference)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	amount := decimal.NewFromInt(txn.AmountKobo).Div(decimal.NewFromInt(100))
	fmt.Printf("reference: %s\n", txn.Reference)
	fmt.Printf("status:    %s\n", txn.Status)
	fmt.Printf("amount:    %s\n", amount.StringFixed(2))
}

// InitPaystackCommands registers payment-gateway commands
func InitPaystackCommands(rootCmd *cobra.Command) error {
	handler, err := NewPaystackCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create paystack command handler %w", err)
	}

	var verifyTransactionCmd = &cobra.Command{
		Use:   "verify-transaction",
		Short: "Verify a gateway transaction by reference",
		Run:   handler.VerifyTransactionCmd,
	}
	verifyTransactionCmd.Flags().StringP("reference", "", "", "Transaction reference to verify")
	verifyTransactionCmd.Flags().StringP("secret-key", "", "", "Paystack secret key (falls back to the PAYSTACK_SECRET_KEY environment variable)")
	verifyTransactionCmd.Flags().StringP("base-url", "", "https://api.paystack.co", "Paystack API base URL")
	rootCmd.AddCommand(verifyTransactionCmd)

	return nil
}
