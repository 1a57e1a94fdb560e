// Package wallets defines the wallet and transaction entities and the
// contracts for balance queries, transfers, deposits and webhook processing.
package wallets

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Wallet holds a user's funds. Balances are naira amounts with two
// decimal places and are never negative.
type Wallet struct {
	ID           string `validate:"required,uuid4"`
	UserID       string `validate:"required,uuid4"`
	WalletNumber string `validate:"required,len=13,numeric"`
	Balance      decimal.Decimal
	CreatedAt    time.Time `validate:"required"`
	UpdatedAt    time.Time
}

// Validate for validating Wallet struct
func (w *Wallet) Validate() error {
	validate := validator.New()

	err := validate.Struct(w)
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

	if w.Balance.IsNegative() {
		return fmt.Errorf("validation failed: balance must not be negative")
	}

	return nil
}
