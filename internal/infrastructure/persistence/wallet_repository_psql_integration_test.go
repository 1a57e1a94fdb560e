//go:build integration
// +build integration

package persistence

import (
	"context"
	"sync"
	"testing"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletPostgresRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	user := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), user))

	wallet := CreateTestWallet(t, user.ID, decimal.Zero)
	require.NoError(t, ctx.WalletRepo.Create(context.Background(), wallet))

	fetched, err := ctx.WalletRepo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, wallet.WalletNumber, fetched.WalletNumber)
}

func TestWalletPostgresRepository_Transfer(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	sender := CreateTestUser(t)
	recipient := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), sender))
	require.NoError(t, ctx.UserRepo.Create(context.Background(), recipient))

	senderWallet := CreateTestWallet(t, sender.ID, decimal.NewFromInt(300))
	recipientWallet := CreateTestWallet(t, recipient.ID, decimal.Zero)
	require.NoError(t, ctx.WalletRepo.Create(context.Background(), senderWallet))
	require.NoError(t, ctx.WalletRepo.Create(context.Background(), recipientWallet))

	receipt, err := ctx.WalletRepo.Transfer(context.Background(),
		senderWallet.WalletNumber, recipientWallet.WalletNumber, decimal.NewFromInt(120), "TRF_D4E5F6A1B2C3")
	require.NoError(t, err)
	assert.Equal(t, senderWallet.WalletNumber, receipt.SenderWallet)

	updatedSender, err := ctx.WalletRepo.GetByNumber(context.Background(), senderWallet.WalletNumber)
	require.NoError(t, err)
	assert.True(t, updatedSender.Balance.Equal(decimal.NewFromInt(180)))

	updatedRecipient, err := ctx.WalletRepo.GetByNumber(context.Background(), recipientWallet.WalletNumber)
	require.NoError(t, err)
	assert.True(t, updatedRecipient.Balance.Equal(decimal.NewFromInt(120)))
}

func TestWalletPostgresRepository_Transfer_Concurrent(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)

	userA := CreateTestUser(t)
	userB := CreateTestUser(t)
	require.NoError(t, ctx.UserRepo.Create(context.Background(), userA))
	require.NoError(t, ctx.UserRepo.Create(context.Background(), userB))

	walletA := CreateTestWallet(t, userA.ID, decimal.NewFromInt(1000))
	walletB := CreateTestWallet(t, userB.ID, decimal.NewFromInt(1000))
	require.NoError(t, ctx.WalletRepo.Create(context.Background(), walletA))
	require.NoError(t, ctx.WalletRepo.Create(context.Background(), walletB))

	// Opposing transfers exercise the ordered row locking: without it this
	// pattern deadlocks under FOR UPDATE.
	const rounds = 10
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := ctx.WalletRepo.Transfer(context.Background(),
				walletA.WalletNumber, walletB.WalletNumber, decimal.NewFromInt(5),
				utils.GenerateReference("TRF"))
			assert.NoError(t, err)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := ctx.WalletRepo.Transfer(context.Background(),
				walletB.WalletNumber, walletA.WalletNumber, decimal.NewFromInt(5),
				utils.GenerateReference("TRF"))
			assert.NoError(t, err)
		}
	}()

	wg.Wait()

	// Funds are conserved
	finalA, err := ctx.WalletRepo.GetByNumber(context.Background(), walletA.WalletNumber)
	require.NoError(t, err)
	finalB, err := ctx.WalletRepo.GetByNumber(context.Background(), walletB.WalletNumber)
	require.NoError(t, err)
	assert.True(t, finalA.Balance.Add(finalB.Balance).Equal(decimal.NewFromInt(2000)))
	assert.True(t, finalA.Balance.Equal(decimal.NewFromInt(1000)))
}
