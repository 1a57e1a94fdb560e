//go:build integration
// +build integration

package app

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/persistence"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/testutil"
	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/require"
)

// Test constants shared by the service integration tests
const (
	TestJWTSecret        = "0123456789abcdef0123456789abcdef"
	TestWebhookSignature = "valid-signature"
)

// StubOAuthConnector is an in-memory OAuthConnector for tests
type StubOAuthConnector struct {
	Profile     *users.GoogleProfile
	AccessToken string
	ExchangeErr error
}

func (c *StubOAuthConnector) ConsentURL(state string) string {
	return "https://accounts.google.com/o/oauth2/v2/auth?state=" + state
}

func (c *StubOAuthConnector) ExchangeCode(_ context.Context, _ string) (string, error) {
	if c.ExchangeErr != nil {
		return "", c.ExchangeErr
	}
	return c.AccessToken, nil
}

func (c *StubOAuthConnector) FetchProfile(_ context.Context, _ string) (*users.GoogleProfile, error) {
	return c.Profile, nil
}

// StubPaymentGateway is an in-memory PaymentGateway for tests. It records
// the last initialization request for assertions.
type StubPaymentGateway struct {
	InitializeErr error
	Verification  *wallets.GatewayTransaction

	LastEmail     string
	LastAmount    decimal.Decimal
	LastReference string
}

func (g *StubPaymentGateway) InitializeTransaction(_ context.Context, email string, amount decimal.Decimal, reference string) (*wallets.GatewayAuthorization, error) {
	if g.InitializeErr != nil {
		return nil, g.InitializeErr
	}

	g.LastEmail = email
	g.LastAmount = amount
	g.LastReference = reference
	return &wallets.GatewayAuthorization{
		AuthorizationURL: "https://checkout.paystack.com/" + reference,
		AccessCode:       "access_" + reference,
		Reference:        reference,
	}, nil
}

func (g *StubPaymentGateway) VerifyTransaction(_ context.Context, reference string) (*wallets.GatewayTransaction, error) {
	if g.Verification != nil {
		return g.Verification, nil
	}
	return &wallets.GatewayTransaction{Reference: reference, Status: "success"}, nil
}

func (g *StubPaymentGateway) ValidateWebhookSignature(_ []byte, signature string) bool {
	return signature == TestWebhookSignature
}

// MemoryStateStore is an in-memory StateStore for tests
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]time.Time)}
}

func (s *MemoryStateStore) Put(_ context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryStateStore) Take(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline, ok := s.states[state]
	if !ok {
		return false, nil
	}
	delete(s.states, state)
	return time.Now().Before(deadline), nil
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	TokenService   users.TokenService
	AuthService    users.AuthService
	APIKeyService  apikeys.APIKeyService
	WalletService  wallets.WalletService
	DepositService wallets.DepositService
	WebhookService wallets.WebhookService

	OAuth      *StubOAuthConnector
	Gateway    *StubPaymentGateway
	StateStore *MemoryStateStore

	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	authSettings := &config.AuthSettings{
		JWTSecret:                TestJWTSecret,
		AccessTokenExpireMinutes: 30,
		RefreshTokenExpireDays:   7,
		GoogleClientID:           "test-client-id",
		GoogleClientSecret:       "test-client-secret",
		GoogleRedirectURI:        "http://localhost:8000/api/v1/auth/google/callback",
	}

	oauth := &StubOAuthConnector{
		Profile: &users.GoogleProfile{
			GoogleID: "google-subject-1",
			Email:    "ada@example.com",
			Name:     "Ada Lovelace",
		},
		AccessToken: "ya29.test-token",
	}
	gateway := &StubPaymentGateway{}
	stateStore := NewMemoryStateStore()

	tokenService, err := NewTokenService(authSettings, logger)
	require.NoError(t, err, "Failed to create TokenService")

	authService, err := NewAuthService(
		oauth,
		tokenService,
		stateStore,
		dbContext.UserRepo,
		dbContext.RefreshTokenRepo,
		dbContext.WalletRepo,
		authSettings,
		logger,
	)
	require.NoError(t, err, "Failed to create AuthService")

	apiKeyService, err := NewAPIKeyService(dbContext.APIKeyRepo, logger)
	require.NoError(t, err, "Failed to create APIKeyService")

	walletService, err := NewWalletService(dbContext.WalletRepo, dbContext.TransactionRepo, logger)
	require.NoError(t, err, "Failed to create WalletService")

	depositService, err := NewDepositService(dbContext.WalletRepo, dbContext.TransactionRepo, gateway, logger)
	require.NoError(t, err, "Failed to create DepositService")

	webhookService, err := NewWebhookService(gateway, dbContext.WalletRepo, dbContext.TransactionRepo, logger)
	require.NoError(t, err, "Failed to create WebhookService")

	return &TestServices{
		TokenService:   tokenService,
		AuthService:    authService,
		APIKeyService:  apiKeyService,
		WalletService:  walletService,
		DepositService: depositService,
		WebhookService: webhookService,
		OAuth:          oauth,
		Gateway:        gateway,
		StateStore:     stateStore,
		DBContext:      dbContext,
	}
}

// loginTestUser completes a stubbed Google sign-in and returns the result.
func loginTestUser(t *testing.T, services *TestServices) *users.LoginResult {
	t.Helper()

	ctx := context.Background()
	redirectURL, err := services.AuthService.LoginRedirectURL(ctx)
	require.NoError(t, err)

	parsed, err := url.Parse(redirectURL)
	require.NoError(t, err)

	result, err := services.AuthService.CompleteLogin(ctx, "test-code", parsed.Query().Get("state"))
	require.NoError(t, err)
	return result
}
