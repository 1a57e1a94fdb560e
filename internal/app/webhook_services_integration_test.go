//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initiateTestDeposit registers a pending deposit and returns its reference.
func initiateTestDeposit(t *testing.T, services *TestServices, userID, email string, amount decimal.Decimal) string {
	t.Helper()

	init, err := services.DepositService.Initiate(context.Background(), userID, email, amount)
	require.NoError(t, err)
	return init.Reference
}

func chargeEvent(event, reference string) *wallets.GatewayEvent {
	return &wallets.GatewayEvent{
		Event:     event,
		Reference: reference,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func TestWebhookService_ChargeSuccess_CreditsWallet(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user, _ := setupFundedUser(t, services, decimal.NewFromInt(10))
	reference := initiateTestDeposit(t, services, user.ID, user.Email, decimal.NewFromFloat(90.50))

	outcome, err := services.WebhookService.Process(ctx, chargeEvent("charge.success", reference))
	require.NoError(t, err)
	assert.True(t, outcome.Status)
	assert.Equal(t, "Wallet credited successfully", outcome.Message)

	wallet, err := services.WalletService.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromFloat(100.50)))
}

func TestWebhookService_ChargeSuccess_Redelivery(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user, _ := setupFundedUser(t, services, decimal.Zero)
	reference := initiateTestDeposit(t, services, user.ID, user.Email, decimal.NewFromInt(40))

	_, err := services.WebhookService.Process(ctx, chargeEvent("charge.success", reference))
	require.NoError(t, err)

	outcome, err := services.WebhookService.Process(ctx, chargeEvent("charge.success", reference))
	require.NoError(t, err)
	assert.True(t, outcome.Status)
	assert.Equal(t, "Transaction already processed", outcome.Message)

	// credited exactly once
	wallet, err := services.WalletService.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(40)))
}

func TestWebhookService_ChargeSuccess_UnknownReference(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	outcome, err := services.WebhookService.Process(ctx, chargeEvent("charge.success", "DEP_DOESNOTEXIST"))
	require.NoError(t, err)
	assert.True(t, outcome.Status)
	assert.Equal(t, "Transaction not found", outcome.Message)
}

func TestWebhookService_ChargeSuccess_AfterFailureStillCredits(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user, _ := setupFundedUser(t, services, decimal.Zero)
	reference := initiateTestDeposit(t, services, user.ID, user.Email, decimal.NewFromInt(30))

	_, err := services.WebhookService.Process(ctx, chargeEvent("charge.failed", reference))
	require.NoError(t, err)

	outcome, err := services.WebhookService.Process(ctx, chargeEvent("charge.success", reference))
	require.NoError(t, err)
	assert.Equal(t, "Wallet credited successfully", outcome.Message)

	wallet, err := services.WalletService.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(30)))
}

func TestWebhookService_ChargeFailed(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user, _ := setupFundedUser(t, services, decimal.Zero)
	reference := initiateTestDeposit(t, services, user.ID, user.Email, decimal.NewFromInt(25))

	outcome, err := services.WebhookService.Process(ctx, chargeEvent("charge.failed", reference))
	require.NoError(t, err)
	assert.True(t, outcome.Status)
	assert.Equal(t, "Transaction marked as failed", outcome.Message)

	outcome, err = services.WebhookService.Process(ctx, chargeEvent("charge.failed", reference))
	require.NoError(t, err)
	assert.True(t, outcome.Status)
	assert.Equal(t, "Transaction already marked as failed", outcome.Message)

	wallet, err := services.WalletService.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.IsZero())
}

func TestWebhookService_ChargeFailed_AfterSuccess(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user, _ := setupFundedUser(t, services, decimal.Zero)
	reference := initiateTestDeposit(t, services, user.ID, user.Email, decimal.NewFromInt(60))

	_, err := services.WebhookService.Process(ctx, chargeEvent("charge.success", reference))
	require.NoError(t, err)

	outcome, err := services.WebhookService.Process(ctx, chargeEvent("charge.failed", reference))
	require.NoError(t, err)
	assert.False(t, outcome.Status)
	assert.Equal(t, "Transaction already successful", outcome.Message)

	wallet, err := services.WalletService.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(60)))
}

func TestWebhookService_ChargeFailed_UnknownReference(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	outcome, err := services.WebhookService.Process(ctx, chargeEvent("charge.failed", "DEP_DOESNOTEXIST"))
	require.NoError(t, err)
	assert.True(t, outcome.Status)
	assert.Equal(t, "Transaction not found", outcome.Message)
}

func TestWebhookService_UnhandledEvent(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	outcome, err := services.WebhookService.Process(ctx, chargeEvent("transfer.success", "TRF_SOMEREF"))
	require.NoError(t, err)
	assert.True(t, outcome.Status)
	assert.Equal(t, "Webhook received", outcome.Message)
}

func TestWebhookService_ExpiredEvent(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	event := &wallets.GatewayEvent{
		Event:     "charge.success",
		Reference: "DEP_STALEEVENT",
		CreatedAt: time.Now().UTC().Add(-10 * time.Minute).Format(time.RFC3339),
	}

	_, err := services.WebhookService.Process(ctx, event)
	assert.ErrorIs(t, err, wallets.ErrWebhookExpired)
}

func TestWebhookService_MissingReference(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	event := &wallets.GatewayEvent{
		Event:     "charge.success",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	_, err := services.WebhookService.Process(ctx, event)
	assert.ErrorIs(t, err, wallets.ErrMissingReference)
}

func TestWebhookService_UnparsableTimestampIsAccepted(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	event := &wallets.GatewayEvent{
		Event:     "charge.success",
		Reference: "DEP_DOESNOTEXIST",
		CreatedAt: "not-a-timestamp",
	}

	outcome, err := services.WebhookService.Process(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, "Transaction not found", outcome.Message)
}

func TestWebhookService_VerifySignature(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	body := []byte(`{"event":"charge.success"}`)
	assert.True(t, services.WebhookService.VerifySignature(body, TestWebhookSignature))
	assert.False(t, services.WebhookService.VerifySignature(body, "forged"))
}
