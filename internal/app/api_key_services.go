package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// apiKeySecretBytes is the entropy of the secret part of a key.
const apiKeySecretBytes = 32

// apiKeyService implements the APIKeyService interface
type apiKeyService struct {
	apiKeyRepo apikeys.APIKeyRepository
	logger     logger.Logger
}

// NewAPIKeyService creates a new instance of APIKeyService
func NewAPIKeyService(apiKeyRepo apikeys.APIKeyRepository, logger logger.Logger) (apikeys.APIKeyService, error) {
	return &apiKeyService{
		apiKeyRepo: apiKeyRepo,
		logger:     logger,
	}, nil
}

// Create issues a new key for the user
func (s *apiKeyService) Create(ctx context.Context, userID string, params apikeys.CreateParams) (*apikeys.IssuedKey, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	active, err := s.apiKeyRepo.CountActiveByUserID(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count active keys: %w", err)
	}
	if active >= apikeys.MaxActiveKeys {
		return nil, apikeys.ErrTooManyActiveKeys
	}

	expiresAt, err := apikeys.ParseExpiry(params.Expiry, now)
	if err != nil {
		return nil, err
	}

	secret, err := utils.GenerateURLSafeToken(apiKeySecretBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key secret: %w", err)
	}
	plainKey := apikeys.KeyPrefix + secret

	hash, err := bcrypt.GenerateFromPassword([]byte(plainKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash key: %w", err)
	}

	key := &apikeys.APIKey{
		ID:          uuid.NewString(),
		UserID:      userID,
		KeyHash:     string(hash),
		KeyPrefix:   plainKey[len(apikeys.KeyPrefix) : len(apikeys.KeyPrefix)+apikeys.LookupPrefixLength],
		Name:        params.Name,
		Permissions: params.Permissions,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.apiKeyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Created API key %s for user %s", key.ID, userID))
	return &apikeys.IssuedKey{Key: key, PlainKey: plainKey}, nil
}

// Rollover replaces an expired key with a fresh one carrying the same
// name and permissions
func (s *apiKeyService) Rollover(ctx context.Context, userID, expiredKeyID, expiry string) (*apikeys.IssuedKey, error) {
	expired, err := s.apiKeyRepo.GetByIDForUser(ctx, expiredKeyID, userID)
	if err != nil {
		return nil, err
	}
	if expired.IsValid(time.Now().UTC()) {
		return nil, apikeys.ErrAPIKeyNotExpired
	}

	return s.Create(ctx, userID, apikeys.CreateParams{
		Name:        expired.Name,
		Permissions: expired.Permissions,
		Expiry:      expiry,
	})
}

// Revoke invalidates a key immediately. Revoking an already revoked key
// succeeds without change
func (s *apiKeyService) Revoke(ctx context.Context, userID, keyID string) error {
	key, err := s.apiKeyRepo.GetByIDForUser(ctx, keyID, userID)
	if err != nil {
		return err
	}
	if key.Revoked {
		return nil
	}

	if err := s.apiKeyRepo.RevokeByID(ctx, key.ID); err != nil {
		return err
	}

	s.logger.Info(fmt.Sprintf("Revoked API key %s for user %s", key.ID, userID))
	return nil
}

// List returns the user's keys, newest first, up to limit
func (s *apiKeyService) List(ctx context.Context, userID string, limit int) ([]*apikeys.APIKey, error) {
	query := &apikeys.APIKeyQuery{Limit: limit}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return s.apiKeyRepo.ListByUserID(ctx, userID, query.Limit)
}

// Validate resolves a plaintext key to its stored record. Candidates are
// narrowed by the stored lookup prefix before the cost of a hash compare.
func (s *apiKeyService) Validate(ctx context.Context, plainKey string) (*apikeys.APIKey, error) {
	if !strings.HasPrefix(plainKey, apikeys.KeyPrefix) ||
		len(plainKey) < len(apikeys.KeyPrefix)+apikeys.LookupPrefixLength {
		return nil, apikeys.ErrAPIKeyInvalid
	}

	prefix := plainKey[len(apikeys.KeyPrefix) : len(apikeys.KeyPrefix)+apikeys.LookupPrefixLength]
	candidates, err := s.apiKeyRepo.ListActiveByPrefix(ctx, prefix, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to load key candidates: %w", err)
	}

	for _, candidate := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidate.KeyHash), []byte(plainKey)) == nil {
			return candidate, nil
		}
	}

	return nil, apikeys.ErrAPIKeyInvalid
}
