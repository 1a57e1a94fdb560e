package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// depositService implements the DepositService interface for gateway-backed
// deposits
type depositService struct {
	walletRepo      wallets.WalletRepository
	transactionRepo wallets.TransactionRepository
	gateway         wallets.PaymentGateway
	logger          logger.Logger
}

// NewDepositService creates a new instance of DepositService
func NewDepositService(
	walletRepo wallets.WalletRepository,
	transactionRepo wallets.TransactionRepository,
	gateway wallets.PaymentGateway,
	logger logger.Logger,
) (wallets.DepositService, error) {
	return &depositService{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		gateway:         gateway,
		logger:          logger,
	}, nil
}

// Initiate records a pending deposit and registers it with the payment
// gateway, returning the checkout URL. The pending transaction is written
// before the gateway call so the webhook always finds it.
func (s *depositService) Initiate(ctx context.Context, userID, email string, amount decimal.Decimal) (*wallets.DepositInit, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("deposit amount must be positive")
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transaction := &wallets.Transaction{
		ID:        uuid.NewString(),
		WalletID:  wallet.ID,
		Type:      wallets.TypeDeposit,
		Amount:    amount,
		Reference: utils.GenerateReference(wallets.ReferencePrefixDeposit),
		Status:    wallets.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	authorization, err := s.gateway.InitializeTransaction(ctx, email, amount, transaction.Reference)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Deposit %s could not be registered with the gateway: %v", transaction.Reference, err))
		return nil, fmt.Errorf("%w: %v", wallets.ErrPaymentGatewayFailed, err)
	}

	s.logger.Info(fmt.Sprintf("Deposit %s of %s initiated for wallet %s",
		transaction.Reference, amount.StringFixed(2), wallet.WalletNumber))
	return &wallets.DepositInit{
		Reference:        transaction.Reference,
		AuthorizationURL: authorization.AuthorizationURL,
	}, nil
}

// GetStatus returns the deposit transaction for a reference, scoped to the
// user's own wallet
func (s *depositService) GetStatus(ctx context.Context, userID, reference string) (*wallets.Transaction, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if transaction.WalletID != wallet.ID {
		return nil, wallets.ErrTransactionNotFound
	}

	return transaction, nil
}
