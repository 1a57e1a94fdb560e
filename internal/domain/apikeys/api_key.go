// Package apikeys defines the API key entity and the contracts for issuing,
// rolling over, revoking and validating keys.
package apikeys

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// KeyPrefix starts every issued key. The eight characters that follow it are
// stored as a lookup prefix so validation never scans the whole table.
const KeyPrefix = "sk_live_"

// LookupPrefixLength is the number of secret characters stored for lookup.
const LookupPrefixLength = 8

// MaxActiveKeys is the per-user ceiling of unrevoked, unexpired keys.
const MaxActiveKeys = 5

// Permissions grantable to an API key. A JWT session implicitly holds all of
// them; keys are checked per route.
const (
	PermissionRead     = "read"
	PermissionDeposit  = "deposit"
	PermissionTransfer = "transfer"
)

// Expiry options accepted at key creation and rollover.
const (
	Expiry1H = "1H"
	Expiry1D = "1D"
	Expiry1M = "1M"
	Expiry1Y = "1Y"
)

// APIKey represents an issued key. The plaintext is shown once at creation;
// only a bcrypt hash and the lookup prefix survive.
type APIKey struct {
	ID          string    `validate:"required,uuid4"`
	UserID      string    `validate:"required,uuid4"`
	KeyHash     string    `validate:"required"`
	KeyPrefix   string    `validate:"required,len=8"`
	Name        string    `validate:"required,min=1,max=100"`
	Permissions []string  `validate:"required,min=1,dive,oneof=read deposit transfer"`
	ExpiresAt   time.Time `validate:"required"`
	Revoked     bool
	CreatedAt   time.Time `validate:"required"`
	UpdatedAt   time.Time
}

// Validate for validating APIKey struct
func (k *APIKey) Validate() error {
	validate := validator.New()

	err := validate.Struct(k)
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

// IsValid reports whether the key is neither revoked nor expired at now.
func (k *APIKey) IsValid(now time.Time) bool {
	return !k.Revoked && k.ExpiresAt.After(now)
}

// HasPermission reports whether the key grants the given permission.
func (k *APIKey) HasPermission(permission string) bool {
	for _, p := range k.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// ParseExpiry converts an expiry option (1H, 1D, 1M, 1Y) into an absolute
// UTC timestamp. Months count as 30 days and years as 365.
func ParseExpiry(expiry string, now time.Time) (time.Time, error) {
	switch expiry {
	case Expiry1H:
		return now.Add(time.Hour), nil
	case Expiry1D:
		return now.Add(24 * time.Hour), nil
	case Expiry1M:
		return now.Add(30 * 24 * time.Hour), nil
	case Expiry1Y:
		return now.Add(365 * 24 * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("invalid expiry format: %s", expiry)
	}
}
