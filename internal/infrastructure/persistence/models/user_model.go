package models

import (
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
)

// UserModel is the GORM database model for users (infrastructure concern)
type UserModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Email     string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	GoogleID  string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	Name      string    `gorm:"not null;type:varchar(255)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:        m.ID,
		Email:     m.Email,
		GoogleID:  m.GoogleID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Email = u.Email
	m.GoogleID = u.GoogleID
	m.Name = u.Name
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}
