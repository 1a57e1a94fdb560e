//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of users.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) LoginRedirectURL(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) CompleteLogin(ctx context.Context, code, state string) (*users.LoginResult, error) {
	args := m.Called(ctx, code, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.LoginResult), args.Error(1)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

// MockTokenService is a mock implementation of users.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueAccessToken(user *users.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) VerifyAccessToken(token string) (*users.AccessClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.AccessClaims), args.Error(1)
}

// MockAPIKeyService is a mock implementation of apikeys.APIKeyService
type MockAPIKeyService struct {
	mock.Mock
}

func (m *MockAPIKeyService) Create(ctx context.Context, userID string, params apikeys.CreateParams) (*apikeys.IssuedKey, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apikeys.IssuedKey), args.Error(1)
}

func (m *MockAPIKeyService) Rollover(ctx context.Context, userID, expiredKeyID, expiry string) (*apikeys.IssuedKey, error) {
	args := m.Called(ctx, userID, expiredKeyID, expiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apikeys.IssuedKey), args.Error(1)
}

func (m *MockAPIKeyService) Revoke(ctx context.Context, userID, keyID string) error {
	args := m.Called(ctx, userID, keyID)
	return args.Error(0)
}

func (m *MockAPIKeyService) List(ctx context.Context, userID string, limit int) ([]*apikeys.APIKey, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*apikeys.APIKey), args.Error(1)
}

func (m *MockAPIKeyService) Validate(ctx context.Context, plainKey string) (*apikeys.APIKey, error) {
	args := m.Called(ctx, plainKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apikeys.APIKey), args.Error(1)
}

// MockWalletService is a mock implementation of wallets.WalletService
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetBalance(ctx context.Context, userID string) (*wallets.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallets.Wallet), args.Error(1)
}

func (m *MockWalletService) GetByNumber(ctx context.Context, walletNumber string) (*wallets.Wallet, error) {
	args := m.Called(ctx, walletNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallets.Wallet), args.Error(1)
}

func (m *MockWalletService) Transfer(ctx context.Context, userID, recipientNumber string, amount decimal.Decimal) (*wallets.TransferReceipt, error) {
	args := m.Called(ctx, userID, recipientNumber, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallets.TransferReceipt), args.Error(1)
}

func (m *MockWalletService) ListTransactions(ctx context.Context, userID string, query *wallets.TransactionQuery) ([]*wallets.Transaction, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallets.Transaction), args.Error(1)
}

// MockDepositService is a mock implementation of wallets.DepositService
type MockDepositService struct {
	mock.Mock
}

func (m *MockDepositService) Initiate(ctx context.Context, userID, email string, amount decimal.Decimal) (*wallets.DepositInit, error) {
	args := m.Called(ctx, userID, email, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallets.DepositInit), args.Error(1)
}

func (m *MockDepositService) GetStatus(ctx context.Context, userID, reference string) (*wallets.Transaction, error) {
	args := m.Called(ctx, userID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallets.Transaction), args.Error(1)
}

// MockWebhookService is a mock implementation of wallets.WebhookService
type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) VerifySignature(body []byte, signature string) bool {
	args := m.Called(body, signature)
	return args.Bool(0)
}

func (m *MockWebhookService) Process(ctx context.Context, event *wallets.GatewayEvent) (*wallets.WebhookOutcome, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallets.WebhookOutcome), args.Error(1)
}
