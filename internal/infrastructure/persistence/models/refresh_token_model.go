package models

import (
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
)

// RefreshTokenModel is the GORM database model for refresh tokens
// (infrastructure concern). Tokens are stored as SHA-256 hashes.
type RefreshTokenModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"not null;index;type:uuid"`
	TokenHash string    `gorm:"not null;uniqueIndex;type:varchar(64)"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// ToDomain converts GORM model to domain entity
func (m *RefreshTokenModel) ToDomain() *users.RefreshToken {
	return &users.RefreshToken{
		ID:        m.ID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		Revoked:   m.Revoked,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *RefreshTokenModel) FromDomain(t *users.RefreshToken) {
	m.ID = t.ID
	m.UserID = t.UserID
	m.TokenHash = t.TokenHash
	m.ExpiresAt = t.ExpiresAt
	m.Revoked = t.Revoked
	m.CreatedAt = t.CreatedAt
}
