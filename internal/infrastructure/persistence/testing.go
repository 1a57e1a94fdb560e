//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/persistence/models"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/testutil"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	UserRepo         users.UserRepository
	RefreshTokenRepo users.RefreshTokenRepository
	WalletRepo       wallets.WalletRepository
	TransactionRepo  wallets.TransactionRepository
	APIKeyRepo       apikeys.APIKeyRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	// Create connection
	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	// Register cleanup
	t.Cleanup(func() {
		CloseDB(db)
		cleanupFunc()
	})

	// Migrate schema
	err = db.AutoMigrate(
		&models.UserModel{},
		&models.WalletModel{},
		&models.TransactionModel{},
		&models.APIKeyModel{},
		&models.RefreshTokenModel{},
	)
	require.NoError(t, err, "Failed to migrate schema")

	// Create repositories
	logger := testutil.SetupTestLogger(t)

	userRepo, err := NewGormUserRepository(db, logger)
	require.NoError(t, err, "Failed to create user repository")

	refreshTokenRepo, err := NewGormRefreshTokenRepository(db, logger)
	require.NoError(t, err, "Failed to create refresh token repository")

	walletRepo, err := NewGormWalletRepository(db, logger)
	require.NoError(t, err, "Failed to create wallet repository")

	transactionRepo, err := NewGormTransactionRepository(db, logger)
	require.NoError(t, err, "Failed to create transaction repository")

	apiKeyRepo, err := NewGormAPIKeyRepository(db, logger)
	require.NoError(t, err, "Failed to create api key repository")

	return &TestContext{
		DB:               db,
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokenRepo,
		WalletRepo:       walletRepo,
		TransactionRepo:  transactionRepo,
		APIKeyRepo:       apiKeyRepo,
	}
}

// CreateTestUser creates a user with default values
func CreateTestUser(t *testing.T) *users.User {
	t.Helper()

	id := uuid.NewString()
	return &users.User{
		ID:        id,
		Email:     id[:8] + "@example.com",
		GoogleID:  "google-" + id,
		Name:      "Test User",
		CreatedAt: time.Now().UTC(),
	}
}

// CreateTestWallet creates a wallet for a user with the given balance
func CreateTestWallet(t *testing.T, userID string, balance decimal.Decimal) *wallets.Wallet {
	t.Helper()

	walletNumber, err := utils.GenerateWalletNumber()
	require.NoError(t, err)

	return &wallets.Wallet{
		ID:           uuid.NewString(),
		UserID:       userID,
		WalletNumber: walletNumber,
		Balance:      balance,
		CreatedAt:    time.Now().UTC(),
	}
}

// CreateTestDeposit creates a pending deposit transaction for a wallet
func CreateTestDeposit(t *testing.T, walletID string, amount decimal.Decimal) *wallets.Transaction {
	t.Helper()

	return &wallets.Transaction{
		ID:        uuid.NewString(),
		WalletID:  walletID,
		Type:      wallets.TypeDeposit,
		Amount:    amount,
		Reference: utils.GenerateReference(wallets.ReferencePrefixDeposit),
		Status:    wallets.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// CreateTestAPIKey creates an api key record for a user. The plaintext is
// not derivable from the returned entity.
func CreateTestAPIKey(t *testing.T, userID string, expiresAt time.Time) *apikeys.APIKey {
	t.Helper()

	prefix, err := utils.GenerateURLSafeToken(6)
	require.NoError(t, err)

	return &apikeys.APIKey{
		ID:          uuid.NewString(),
		UserID:      userID,
		KeyHash:     "$2a$10$" + uuid.NewString()[:22],
		KeyPrefix:   prefix[:8],
		Name:        "Test Key",
		Permissions: []string{apikeys.PermissionRead},
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now().UTC(),
	}
}
