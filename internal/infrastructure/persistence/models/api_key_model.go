package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
)

// APIKeyModel is the GORM database model for API keys (infrastructure concern).
// Only the bcrypt hash and the lookup prefix of a key are stored; permissions
// live in a serialized JSON array.
type APIKeyModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	UserID      string    `gorm:"not null;index;type:uuid"`
	KeyHash     string    `gorm:"not null;type:varchar(255)"`
	KeyPrefix   string    `gorm:"not null;index;type:varchar(8)"`
	Name        string    `gorm:"not null;type:varchar(100)"`
	Permissions string    `gorm:"not null;type:text"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	Revoked     bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (APIKeyModel) TableName() string {
	return "api_keys"
}

// ToDomain converts GORM model to domain entity
func (m *APIKeyModel) ToDomain() (*apikeys.APIKey, error) {
	var permissions []string
	if err := json.Unmarshal([]byte(m.Permissions), &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode api key permissions: %w", err)
	}

	return &apikeys.APIKey{
		ID:          m.ID,
		UserID:      m.UserID,
		KeyHash:     m.KeyHash,
		KeyPrefix:   m.KeyPrefix,
		Name:        m.Name,
		Permissions: permissions,
		ExpiresAt:   m.ExpiresAt,
		Revoked:     m.Revoked,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// FromDomain converts domain entity to GORM model
func (m *APIKeyModel) FromDomain(k *apikeys.APIKey) error {
	raw, err := json.Marshal(k.Permissions)
	if err != nil {
		return fmt.Errorf("failed to encode api key permissions: %w", err)
	}

	m.ID = k.ID
	m.UserID = k.UserID
	m.KeyHash = k.KeyHash
	m.KeyPrefix = k.KeyPrefix
	m.Name = k.Name
	m.Permissions = string(raw)
	m.ExpiresAt = k.ExpiresAt
	m.Revoked = k.Revoked
	m.CreatedAt = k.CreatedAt
	m.UpdatedAt = k.UpdatedAt

	return nil
}
