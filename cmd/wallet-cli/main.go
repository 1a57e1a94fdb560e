// Package main is the entry point for the wallet-cli application.
// It initializes the root command and registers various sub-commands (tokens,
// API keys, health probes, gateway queries) for the CLI, then executes the
// command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/lexmanthefirst/paystack-wallet-to-wallet-service/cmd/wallet-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "wallet-cli",
		Short: "Wallet service operations CLI tool",
		Long: `wallet-cli is a command-line tool for operating the wallet service.
Supports issuing and verifying access tokens, generating API key material,
probing the service health endpoint, and verifying Paystack transactions.

Secrets can be passed via flags or environment variables:
- JWT_SECRET for token commands
- PAYSTACK_SECRET_KEY for gateway commands`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	// Register access token commands
	if err := commands.InitTokenCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize token commands: %w", err)
	}

	// Register API key commands
	if err := commands.InitAPIKeyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize API key commands: %w", err)
	}

	// Register health probe commands
	if err := commands.InitHealthCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize health commands: %w", err)
	}

	// Register payment gateway commands
	if err := commands.InitPaystackCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize paystack commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
