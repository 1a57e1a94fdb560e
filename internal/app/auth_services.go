package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

const (
	// oauthStateTTL bounds the time between redirect and callback.
	oauthStateTTL = 10 * time.Minute

	// refreshTokenBytes is the entropy of an opaque refresh token.
	refreshTokenBytes = 32

	// walletNumberAttempts bounds retries on wallet number collisions.
	walletNumberAttempts = 5
)

// authService implements the AuthService interface for Google sign-in
type authService struct {
	oauthConnector   users.OAuthConnector
	tokenService     users.TokenService
	stateStore       users.StateStore
	userRepo         users.UserRepository
	refreshTokenRepo users.RefreshTokenRepository
	walletRepo       wallets.WalletRepository
	refreshExpiry    time.Duration
	logger           logger.Logger
}

// NewAuthService creates a new instance of AuthService. stateStore may be
// nil, in which case OAuth state validation is skipped.
func NewAuthService(
	oauthConnector users.OAuthConnector,
	tokenService users.TokenService,
	stateStore users.StateStore,
	userRepo users.UserRepository,
	refreshTokenRepo users.RefreshTokenRepository,
	walletRepo wallets.WalletRepository,
	settings *config.AuthSettings,
	logger logger.Logger,
) (users.AuthService, error) {
	if settings == nil {
		return nil, fmt.Errorf("auth settings must not be nil")
	}

	return &authService{
		oauthConnector:   oauthConnector,
		tokenService:     tokenService,
		stateStore:       stateStore,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		walletRepo:       walletRepo,
		refreshExpiry:    time.Duration(settings.RefreshTokenExpireDays) * 24 * time.Hour,
		logger:           logger,
	}, nil
}

// LoginRedirectURL returns the Google consent URL for a new sign-in attempt
func (s *authService) LoginRedirectURL(ctx context.Context) (string, error) {
	state, err := utils.GenerateURLSafeToken(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}

	if s.stateStore != nil {
		if err := s.stateStore.Put(ctx, state, oauthStateTTL); err != nil {
			return "", fmt.Errorf("failed to store oauth state: %w", err)
		}
	} else {
		s.logger.Warn("No state store configured. OAuth state will not be validated on callback")
	}

	return s.oauthConnector.ConsentURL(state), nil
}

// CompleteLogin exchanges the authorization code, loads or creates the user
// together with their wallet, and returns fresh access and refresh tokens
func (s *authService) CompleteLogin(ctx context.Context, code, state string) (*users.LoginResult, error) {
	if s.stateStore != nil {
		if state == "" {
			return nil, users.ErrOAuthStateMismatch
		}
		known, err := s.stateStore.Take(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("failed to validate oauth state: %w", err)
		}
		if !known {
			return nil, users.ErrOAuthStateMismatch
		}
	}

	googleToken, err := s.oauthConnector.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	profile, err := s.oauthConnector.FetchProfile(ctx, googleToken)
	if err != nil {
		return nil, err
	}

	user, err := s.getOrCreateUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokenService.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.issueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("User %s logged in", user.ID))
	return &users.LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshAccessToken validates an opaque refresh token and mints a new
// access token. The refresh token itself is not rotated
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", users.ErrRefreshTokenInvalid
	}

	stored, err := s.refreshTokenRepo.GetByHash(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		return "", err
	}
	if !stored.IsValid() {
		return "", users.ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return "", err
	}

	return s.tokenService.IssueAccessToken(user)
}

// GetProfile retrieves the profile of an authenticated user by ID
func (s *authService) GetProfile(ctx context.Context, userID string) (*users.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// getOrCreateUser resolves the Google identity to a local user, creating
// the user and their wallet on first sign-in.
func (s *authService) getOrCreateUser(ctx context.Context, profile *users.GoogleProfile) (*users.User, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, profile.GoogleID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user = &users.User{
		ID:        uuid.NewString(),
		Email:     profile.Email,
		GoogleID:  profile.GoogleID,
		Name:      profile.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.createWallet(ctx, user.ID); err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Created user %s with a new wallet", user.ID))
	return user, nil
}

// createWallet provisions the user's wallet, retrying on the rare wallet
// number collision.
func (s *authService) createWallet(ctx context.Context, userID string) error {
	for attempt := 0; attempt < walletNumberAttempts; attempt++ {
		walletNumber, err := utils.GenerateWalletNumber()
		if err != nil {
			return fmt.Errorf("failed to generate wallet number: %w", err)
		}

		now := time.Now().UTC()
		wallet := &wallets.Wallet{
			ID:           uuid.NewString(),
			UserID:       userID,
			WalletNumber: walletNumber,
			Balance:      decimal.Zero,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err = s.walletRepo.Create(ctx, wallet)
		if err == nil {
			return nil
		}
		if !errors.Is(err, wallets.ErrDuplicateWalletNumber) {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
		s.logger.Warn(fmt.Sprintf("Wallet number collision on attempt %d, retrying", attempt+1))
	}

	return fmt.Errorf("failed to create wallet after %d attempts", walletNumberAttempts)
}

// issueRefreshToken stores the digest of a fresh opaque token and returns
// its plaintext.
func (s *authService) issueRefreshToken(ctx context.Context, userID string) (string, error) {
	plain, err := utils.GenerateURLSafeToken(refreshTokenBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	token := &users.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hashRefreshToken(plain),
		ExpiresAt: now.Add(s.refreshExpiry),
		CreatedAt: now,
	}
	if err := s.refreshTokenRepo.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return plain, nil
}

// hashRefreshToken digests a plaintext refresh token for storage and lookup.
func hashRefreshToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
