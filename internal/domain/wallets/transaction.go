package wallets

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Transaction type constants
const (
	TypeDeposit     = "deposit"
	TypeTransferIn  = "transfer_in"
	TypeTransferOut = "transfer_out"
)

// Transaction status constants
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Reference prefixes for deposits and transfers
const (
	ReferencePrefixDeposit  = "DEP"
	ReferencePrefixTransfer = "TRF"
)

// TransactionMeta carries the counterparty wallet numbers of a transfer leg.
type TransactionMeta struct {
	RecipientWallet string `json:"recipient_wallet,omitempty"`
	SenderWallet    string `json:"sender_wallet,omitempty"`
}

// Transaction records a wallet movement. References are unique across
// all transactions; transfer legs share a stem with _OUT/_IN suffixes.
type Transaction struct {
	ID        string `validate:"required,uuid4"`
	WalletID  string `validate:"required,uuid4"`
	Type      string `validate:"required,oneof=deposit transfer_in transfer_out"`
	Amount    decimal.Decimal
	Reference string `validate:"required"`
	Status    string `validate:"required,oneof=pending success failed"`
	Meta      *TransactionMeta
	CreatedAt time.Time `validate:"required"`
	UpdatedAt time.Time
}

// Validate for validating Transaction struct
func (t *Transaction) Validate() error {
	validate := validator.New()

	err := validate.Struct(t)
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

	if !t.Amount.IsPositive() {
		return fmt.Errorf("validation failed: amount must be positive")
	}

	return nil
}

// TransactionQuery filters transaction history lookups.
type TransactionQuery struct {
	Limit int `validate:"min=1,max=50"`
}

// Validate for validating TransactionQuery struct
func (q *TransactionQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for TransactionQuery: %w", err)
	}

	return nil
}
