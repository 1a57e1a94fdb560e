package commands

import (
	"fmt"
	"os"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/app"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// TokenCommandHandler encapsulates logic for handling access token operations via CLI.
type TokenCommandHandler struct {
	logger logger.Logger
}

// NewTokenCommandHandler initializes and returns a TokenCommandHandler instance with
// a configured logger.
func NewTokenCommandHandler() (*TokenCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &TokenCommandHandler{
		logger: loggerInstance,
	}, nil
}

// tokenServiceFromFlags builds a token service from the jwt-secret flag,
// falling back to the JWT_SECRET environment variable.
func (commandHandler *TokenCommandHandler) tokenServiceFromFlags(cmd *cobra.Command, expireMinutes int) (users.TokenService, error) {
	jwtSecret, err := cmd.Flags().GetString("jwt-secret")
	if err != nil {
		return nil, fmt.Errorf("invalid jwt-secret flag: %w", err)
	}
	if jwtSecret == "" {
		jwtSecret = os.Getenv("JWT_SECRET")
	}

	settings := &config.AuthSettings{
		JWTSecret:                jwtSecret,
		AccessTokenExpireMinutes: expireMinutes,
	}
	return app.NewTokenService(settings, commandHandler.logger)
}

// MintTokenCmd issues a signed access token for a user ID and email
func (commandHandler *TokenCommandHandler) MintTokenCmd(cmd *cobra.Command, _ []string) {
	userID, err := cmd.Flags().GetString("user-id")
	if err != nil {
		commandHandler.logger.Error("invalid user-id flag ", err)
		return
	}
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		commandHandler.logger.Error("invalid email flag ", err)
		return
	}
	expireMinutes, err := cmd.Flags().GetInt("expire-minutes")
	if err != nil {
		commandHandler.logger.Error("invalid expire-minutes flag ", err)
		return
	}

	tokenService, err := commandHandler.tokenServiceFromFlags(cmd, expireMinutes)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	token, err := tokenService.IssueAccessToken(&users.User{ID: userID, Email: email})
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	fmt.Println(token)
	commandHandler.logger.Info("Access token issued for user ", userID)
}

// VerifyTokenCmd validates an access token and prints the claims it carries
func (commandHandler *TokenCommandHandler) VerifyTokenCmd(cmd *cobra.Command, _ []string) {
	token, err := cmd.Flags().GetString("token")
	if err != nil {
		commandHandler.logger.Error("invalid token flag ", err)
		return
	}

	tokenService, err := commandHandler.tokenServiceFromFlags(cmd, 1)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	claims, err := tokenService.VerifyAccessToken(token)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	fmt.Printf("user_id: %s\n", claims.UserID)
	fmt.Printf("email:   %s\n", claims.Email)
	commandHandler.logger.Info("Access token is valid")
}

// InitTokenCommands registers access-token-related commands
func InitTokenCommands(rootCmd *cobra.Command) error {
	handler, err := NewTokenCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create token command handler %w", err)
	}

	var mintTokenCmd = &cobra.Command{
		Use:   "mint-token",
		Short: "Issue a signed access token for a user",
		Run:   handler.MintTokenCmd,
	}
	mintTokenCmd.Flags().StringP("user-id", "", "", "User ID to embed as the token subject")
	mintTokenCmd.Flags().StringP("email", "", "", "Email to embed in the token claims")
	mintTokenCmd.Flags().IntP("expire-minutes", "", 30, "Token lifetime in minutes")
	mintTokenCmd.Flags().StringP("jwt-secret", "", "", "JWT signing secret (falls back to the JWT_SECRET environment variable)")
	rootCmd.AddCommand(mintTokenCmd)

	var verifyTokenCmd = &cobra.Command{
		Use:   "verify-token",
		Short: "Validate an access token and print its claims",
		Run:   handler.VerifyTokenCmd,
	}
	verifyTokenCmd.Flags().StringP("token", "", "", "Access token to validate")
	verifyTokenCmd.Flags().StringP("jwt-secret", "", "", "JWT signing secret (falls back to the JWT_SECRET environment variable)")
	rootCmd.AddCommand(verifyTokenCmd)

	return nil
}
