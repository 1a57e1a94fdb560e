package commands

import (
	"fmt"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/utils"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

// apiKeySecretBytes is the entropy of the secret part of a generated key.
const apiKeySecretBytes = 32

// APIKeyCommandHandler encapsulates logic for handling API key material operations via CLI.
type APIKeyCommandHandler struct {
	logger logger.Logger
}

// NewAPIKeyCommandHandler initializes and returns an APIKeyCommandHandler instance with
// a configured logger.
func NewAPIKeyCommandHandler() (*APIKeyCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &APIKeyCommandHandler{
		logger: loggerInstance,
	}, nil
}

// GenerateAPIKeyCmd generates a plaintext API key together with the bcrypt hash
// and lookup prefix a stored key record carries
func (commandHandler *APIKeyCommandHandler) GenerateAPIKeyCmd(_ *cobra.Command, _ []string) {
	secret, err := utils.GenerateURLSafeToken(apiKeySecretBytes)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	plainKey := apikeys.KeyPrefix + secret

	hash, err := bcrypt.GenerateFromPassword([]byte(plainKey), bcrypt.DefaultCost)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	fmt.Printf("key:    %s\n", plainKey)
	fmt.Printf("prefix: %s\n", plainKey[len(apikeys.KeyPrefix):len(apikeys.KeyPrefix)+apikeys.LookupPrefixLength])
	fmt.Printf("hash:   %s\n", hash)
	commandHandler.logger.Info("Generated API key material")
}

// CheckAPIKeyCmd compares a plaintext API key against a stored bcrypt hash
func (commandHandler *APIKeyCommandHandler) CheckAPIKeyCmd(cmd *cobra.Command, _ []string) {
	plainKey, err := cmd.Flags().GetString("key")
	if err != nil {
		commandHandler.logger.Error("invalid key flag ", err)
		return
	}
	hash, err := cmd.Flags().GetString("hash")
	if err != nil {
		commandHandler.logger.Error("invalid hash flag ", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plainKey)); err != nil {
		commandHandler.logger.Error("API key does not match hash ", err)
		return
	}
	commandHandler.logger.Info("API key matches hash")
}

// InitAPIKeyCommands registers API-key-related commands
func InitAPIKeyCommands(rootCmd *cobra.Command) error {
	handler, err := NewAPIKeyCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create API key command handler %w", err)
	}

	var generateAPIKeyCmd = &cobra.Command{
		Use:   "generate-api-key",
		Short: "Generate API key material (plaintext key, lookup prefix and bcrypt hash)",
		Run:   handler.GenerateAPIKeyCmd,
	}
	rootCmd.AddCommand(generateAPIKeyCmd)

	var checkAPIKeyCmd = &cobra.Command{
		Use:   "check-api-key",
		Short: "Compare a plaintext API key against a stored bcrypt hash",
		Run:   handler.CheckAPIKeyCmd,
	}
	checkAPIKeyCmd.Flags().StringP("key", "", "", "Plaintext API key")
	checkAPIKeyCmd.Flags().StringP("hash", "", "", "Stored bcrypt hash to compare against")
	rootCmd.AddCommand(checkAPIKeyCmd)

	return nil
}
