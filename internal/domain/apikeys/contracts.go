package apikeys

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// CreateParams carries the caller-supplied fields of a new key.
type CreateParams struct {
	Name        string   `validate:"required,min=1,max=100"`
	Permissions []string `validate:"required,min=1,dive,oneof=read deposit transfer"`
	Expiry      string   `validate:"required,oneof=1H 1D 1M 1Y"`
}

// Validate for validating CreateParams struct
func (p *CreateParams) Validate() error {
	validate := validator.New()

	err := validate.Struct(p)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// IssuedKey pairs a stored key with its plaintext, available only at
// creation or rollover time.
type IssuedKey struct {
	Key      *APIKey
	PlainKey string
}

// APIKeyQuery filters key listings.
type APIKeyQuery struct {
	Limit int `validate:"min=1,max=20"`
}

// Validate for validating APIKeyQuery struct
func (q *APIKeyQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for APIKeyQuery: %w", err)
	}

	return nil
}

// APIKeyService defines methods for managing and validating API keys
type APIKeyService interface {
	// Create issues a new key for the user. Fails with ErrTooManyActiveKeys
	// once MaxActiveKeys unexpired, unrevoked keys exist.
	Create(ctx context.Context, userID string, params CreateParams) (*IssuedKey, error)
	// Rollover replaces an expired key with a fresh one carrying the same
	// name and permissions. The old key must belong to the user and must
	// already be expired.
	Rollover(ctx context.Context, userID, expiredKeyID, expiry string) (*IssuedKey, error)
	// Revoke invalidates a key immediately. Revoking an already revoked key
	// succeeds without change.
	Revoke(ctx context.Context, userID, keyID string) error
	// List returns the user's keys, newest first, up to limit.
	List(ctx context.Context, userID string, limit int) ([]*APIKey, error)
	// Validate resolves a plaintext key to its stored record, or
	// ErrAPIKeyInvalid when no active key matches.
	Validate(ctx context.Context, plainKey string) (*APIKey, error)
}

// APIKeyRepository defines methods for persisting API keys
type APIKeyRepository interface {
	Create(ctx context.Context, key *APIKey) error
	// GetByIDForUser returns the key only when it belongs to the user.
	GetByIDForUser(ctx context.Context, id, userID string) (*APIKey, error)
	ListByUserID(ctx context.Context, userID string, limit int) ([]*APIKey, error)
	// ListActiveByPrefix returns unrevoked, unexpired candidates sharing the
	// lookup prefix. Prefix collisions are possible, so callers verify the
	// hash of each candidate.
	ListActiveByPrefix(ctx context.Context, prefix string, now time.Time) ([]*APIKey, error)
	CountActiveByUserID(ctx context.Context, userID string, now time.Time) (int64, error)
	RevokeByID(ctx context.Context, id string) error
}
