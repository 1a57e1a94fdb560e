package models

import (
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/shopspring/decimal"
)

// WalletModel is the GORM database model for wallets (infrastructure concern)
type WalletModel struct {
	ID           string          `gorm:"primaryKey;type:uuid"`
	UserID       string          `gorm:"not null;uniqueIndex;type:uuid"`
	WalletNumber string          `gorm:"not null;uniqueIndex;type:varchar(13)"`
	Balance      decimal.Decimal `gorm:"not null;type:numeric(20,2)"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (WalletModel) TableName() string {
	return "wallets"
}

// ToDomain converts GORM model to domain entity
func (m *WalletModel) ToDomain() *wallets.Wallet {
	return &wallets.Wallet{
		ID:           m.ID,
		UserID:       m.UserID,
		WalletNumber: m.WalletNumber,
		Balance:      m.Balance,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *WalletModel) FromDomain(w *wallets.Wallet) {
	m.ID = w.ID
	m.UserID = w.UserID
	m.WalletNumber = w.WalletNumber
	m.Balance = w.Balance
	m.CreatedAt = w.CreatedAt
	m.UpdatedAt = w.UpdatedAt
}
