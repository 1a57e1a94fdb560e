package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/shopspring/decimal"
)

// TransactionModel is the GORM database model for transactions (infrastructure concern).
// Meta is stored as a serialized JSON document so both PostgreSQL and SQLite
// can hold it without dialect-specific column types.
type TransactionModel struct {
	ID        string          `gorm:"primaryKey;type:uuid"`
	WalletID  string          `gorm:"not null;index;type:uuid"`
	Type      string          `gorm:"not null;type:varchar(20)"`
	Amount    decimal.Decimal `gorm:"not null;type:numeric(20,2)"`
	Reference string          `gorm:"not null;uniqueIndex;type:varchar(64)"`
	Status    string          `gorm:"not null;index;type:varchar(10)"`
	Meta      *string         `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null;index"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts GORM model to domain entity
func (m *TransactionModel) ToDomain() (*wallets.Transaction, error) {
	var meta *wallets.TransactionMeta
	if m.Meta != nil {
		meta = &wallets.TransactionMeta{}
		if err := json.Unmarshal([]byte(*m.Meta), meta); err != nil {
			return nil, fmt.Errorf("failed to decode transaction meta: %w", err)
		}
	}

	return &wallets.Transaction{
		ID:        m.ID,
		WalletID:  m.WalletID,
		Type:      m.Type,
		Amount:    m.Amount,
		Reference: m.Reference,
		Status:    m.Status,
		Meta:      meta,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// FromDomain converts domain entity to GORM model
func (m *TransactionModel) FromDomain(t *wallets.Transaction) error {
	m.ID = t.ID
	m.WalletID = t.WalletID
	m.Type = t.Type
	m.Amount = t.Amount
	m.Reference = t.Reference
	m.Status = t.Status
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt

	m.Meta = nil
	if t.Meta != nil {
		raw, err := json.Marshal(t.Meta)
		if err != nil {
			return fmt.Errorf("failed to encode transaction meta: %w", err)
		}
		encoded := string(raw)
		m.Meta = &encoded
	}

	return nil
}
