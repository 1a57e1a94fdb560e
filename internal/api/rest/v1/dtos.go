package v1

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func validateStruct(value interface{}) error {
	validate := validator.New()

	err := validate.Struct(value)
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

// DepositRequest is the body of POST /wallet/deposit.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Validate for validating DepositRequest struct
func (r *DepositRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

// TransferRequest is the body of POST /wallet/transfer.
type TransferRequest struct {
	WalletNumber string          `json:"wallet_number" validate:"required,len=13,numeric"`
	Amount       decimal.Decimal `json:"amount"`
}

// Validate for validating TransferRequest struct
func (r *TransferRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	return validateStruct(r)
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Validate for validating RefreshRequest struct
func (r *RefreshRequest) Validate() error {
	return validateStruct(r)
}

// CreateAPIKeyRequest is the body of POST /keys/create.
type CreateAPIKeyRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,oneof=read deposit transfer"`
	Expiry      string   `json:"expiry" validate:"required,oneof=1H 1D 1M 1Y"`
}

// Validate for validating CreateAPIKeyRequest struct
func (r *CreateAPIKeyRequest) Validate() error {
	return validateStruct(r)
}

// RolloverAPIKeyRequest is the body of POST /keys/rollover.
type RolloverAPIKeyRequest struct {
	ExpiredKeyID string `json:"expired_key_id" validate:"required,uuid4"`
	Expiry       string `json:"expiry" validate:"required,oneof=1H 1D 1M 1Y"`
}

// Validate for validating RolloverAPIKeyRequest struct
func (r *RolloverAPIKeyRequest) Validate() error {
	return validateStruct(r)
}

// RevokeAPIKeyRequest is the body of POST /keys/revoke.
type RevokeAPIKeyRequest struct {
	KeyID string `json:"key_id" validate:"required,uuid4"`
}

// Validate for validating RevokeAPIKeyRequest struct
func (r *RevokeAPIKeyRequest) Validate() error {
	return validateStruct(r)
}

// UserData is the user object embedded in login replies.
type UserData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ProfileResponse is the unenveloped reply of GET /auth/me.
type ProfileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	GoogleID  string `json:"google_id"`
	CreatedAt string `json:"created_at"`
}

// BalanceData is the payload of GET /wallet/balance.
type BalanceData struct {
	WalletNumber string `json:"wallet_number"`
	Balance      string `json:"balance"`
}

// DepositData is the payload of POST /wallet/deposit.
type DepositData struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
}

// DepositStatusData is the payload of GET /wallet/deposit/:reference/status.
type DepositStatusData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
}

// TransferData is the payload of POST /wallet/transfer.
type TransferData struct {
	Status          string `json:"status"`
	Amount          string `json:"amount"`
	RecipientWallet string `json:"recipient_wallet"`
}

// TransactionData is a single item of GET /wallet/transactions.
type TransactionData struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// TransactionListData is the payload of GET /wallet/transactions.
type TransactionListData struct {
	Transactions []TransactionData `json:"transactions"`
	Count        int               `json:"count"`
}

// CreatedAPIKeyData is the payload of key creation and rollover. The
// plaintext key appears here once and is never retrievable again.
type CreatedAPIKeyData struct {
	KeyID       string   `json:"key_id"`
	APIKey      string   `json:"api_key"`
	ExpiresAt   string   `json:"expires_at"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// APIKeyItemData is a single item of GET /keys.
type APIKeyItemData struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	CreatedAt   string   `json:"created_at"`
	ExpiresAt   string   `json:"expires_at"`
	IsValid     bool     `json:"is_valid"`
}

// APIKeyListData is the payload of GET /keys.
type APIKeyListData struct {
	Keys  []APIKeyItemData `json:"keys"`
	Count int              `json:"count"`
}
