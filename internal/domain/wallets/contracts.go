package wallets

import (
	"context"

	"github.com/shopspring/decimal"
)

// TransferReceipt describes a completed wallet-to-wallet transfer.
type TransferReceipt struct {
	Reference       string
	Amount          decimal.Decimal
	SenderWallet    string
	RecipientWallet string
	OutTransaction  *Transaction
	InTransaction   *Transaction
}

// DepositInit is returned after a deposit was registered with the
// payment gateway.
type DepositInit struct {
	Reference        string
	AuthorizationURL string
}

// GatewayAuthorization is the gateway's reply to a transaction initialization.
type GatewayAuthorization struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// GatewayTransaction is the gateway's view of a transaction, as returned
// by its verification endpoint. Amounts are in kobo.
type GatewayTransaction struct {
	Reference  string
	Status     string
	AmountKobo int64
}

// GatewayEvent is a parsed webhook notification.
type GatewayEvent struct {
	Event     string
	Reference string
	CreatedAt string
}

// WebhookOutcome reports how a webhook event was handled.
type WebhookOutcome struct {
	Status  bool
	Message string
}

// WalletService defines balance, transfer and history operations.
type WalletService interface {
	// GetBalance retrieves the wallet of a user.
	GetBalance(ctx context.Context, userID string) (*Wallet, error)

	// GetByNumber retrieves a wallet by its wallet number.
	GetByNumber(ctx context.Context, walletNumber string) (*Wallet, error)

	// Transfer moves funds from the user's wallet to the wallet identified
	// by recipientNumber. Both legs are written atomically.
	Transfer(ctx context.Context, userID, recipientNumber string, amount decimal.Decimal) (*TransferReceipt, error)

	// ListTransactions returns the newest transactions of the user's wallet.
	ListTransactions(ctx context.Context, userID string, query *TransactionQuery) ([]*Transaction, error)
}

// DepositService defines gateway-backed deposit operations.
type DepositService interface {
	// Initiate records a pending deposit and registers it with the payment
	// gateway, returning the checkout URL.
	Initiate(ctx context.Context, userID, email string, amount decimal.Decimal) (*DepositInit, error)

	// GetStatus returns the deposit transaction for a reference, scoped to
	// the user's own wallet.
	GetStatus(ctx context.Context, userID, reference string) (*Transaction, error)
}

// WebhookService verifies and applies payment gateway notifications.
type WebhookService interface {
	// VerifySignature checks the gateway signature over the raw request body.
	VerifySignature(body []byte, signature string) bool

	// Process applies a charge event idempotently. Unknown references and
	// repeated deliveries resolve to a successful outcome.
	Process(ctx context.Context, event *GatewayEvent) (*WebhookOutcome, error)
}

// PaymentGateway is an interface for the Paystack transaction endpoints.
type PaymentGateway interface {
	// InitializeTransaction registers a pending charge and returns the
	// authorization URL the payer is sent to.
	InitializeTransaction(ctx context.Context, email string, amount decimal.Decimal, reference string) (*GatewayAuthorization, error)

	// VerifyTransaction fetches the gateway's state of a charge.
	VerifyTransaction(ctx context.Context, reference string) (*GatewayTransaction, error)

	// ValidateWebhookSignature reports whether signature matches the raw body.
	ValidateWebhookSignature(body []byte, signature string) bool
}

// WalletRepository defines the interface for Wallet-related persistence
type WalletRepository interface {
	// Create adds a new Wallet to the database
	Create(ctx context.Context, wallet *Wallet) error
	// GetByUserID retrieves the Wallet owned by a user
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
	// GetByNumber retrieves a Wallet by its wallet number
	GetByNumber(ctx context.Context, walletNumber string) (*Wallet, error)
	// Transfer atomically moves amount between two wallets and writes both
	// transaction legs, locking the wallet rows in lexical order
	Transfer(ctx context.Context, senderNumber, recipientNumber string, amount decimal.Decimal, referenceStem string) (*TransferReceipt, error)
	// CreditDeposit atomically credits the wallet behind a pending deposit
	// and marks the transaction successful
	CreditDeposit(ctx context.Context, reference string) (*Transaction, error)
}

// TransactionRepository defines the interface for Transaction persistence
type TransactionRepository interface {
	// Create adds a new Transaction to the database
	Create(ctx context.Context, transaction *Transaction) error
	// GetByReference retrieves a Transaction by its unique reference
	GetByReference(ctx context.Context, reference string) (*Transaction, error)
	// ListByWalletID lists the newest Transactions of a wallet
	ListByWalletID(ctx context.Context, walletID string, query *TransactionQuery) ([]*Transaction, error)
	// MarkFailed transitions a non-successful Transaction to failed
	MarkFailed(ctx context.Context, reference string) (*Transaction, error)
}
