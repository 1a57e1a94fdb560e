//go:build unit
// +build unit

package middleware

import (
	"context"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/cache"
	"github.com/stretchr/testify/mock"
)

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

// MockRateLimiter is a mock implementation of RateLimiter
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string, maxRequests int, window time.Duration) (*cache.Decision, error) {
	args := m.Called(ctx, key, maxRequests, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.Decision), args.Error(1)
}
