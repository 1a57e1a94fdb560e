package app

import (
	"context"
	"fmt"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// defaultTransactionLimit caps history listings when no limit is given.
const defaultTransactionLimit = 50

// walletService implements the WalletService interface for balances,
// transfers and transaction history
type walletService struct {
	walletRepo      wallets.WalletRepository
	transactionRepo wallets.TransactionRepository
	logger          logger.Logger
}

// NewWalletService creates a new instance of WalletService
func NewWalletService(walletRepo wallets.WalletRepository, transactionRepo wallets.TransactionRepository, logger logger.Logger) (wallets.WalletService, error) {
	return &walletService{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}, nil
}

// GetBalance retrieves the wallet of a user
func (s *walletService) GetBalance(ctx context.Context, userID string) (*wallets.Wallet, error) {
	return s.walletRepo.GetByUserID(ctx, userID)
}

// GetByNumber retrieves a wallet by its wallet number
func (s *walletService) GetByNumber(ctx context.Context, walletNumber string) (*wallets.Wallet, error) {
	return s.walletRepo.GetByNumber(ctx, walletNumber)
}

// Transfer moves funds from the user's wallet to the wallet identified by
// recipientNumber. Both legs are written atomically by the repository
func (s *walletService) Transfer(ctx context.Context, userID, recipientNumber string, amount decimal.Decimal) (*wallets.TransferReceipt, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("transfer amount must be positive")
	}

	sender, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sender.WalletNumber == recipientNumber {
		return nil, wallets.ErrSelfTransfer
	}

	referenceStem := utils.GenerateReference(wallets.ReferencePrefixTransfer)
	receipt, err := s.walletRepo.Transfer(ctx, sender.WalletNumber, recipientNumber, amount, referenceStem)
	if err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Transfer %s of %s from %s to %s completed",
		receipt.Reference, amount.StringFixed(2), receipt.SenderWallet, receipt.RecipientWallet))
	return receipt, nil
}

// ListTransactions returns the newest transactions of the user's wallet
func (s *walletService) ListTransactions(ctx context.Context, userID string, query *wallets.TransactionQuery) ([]*wallets.Transaction, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if query == nil {
		query = &wallets.TransactionQuery{Limit: defaultTransactionLimit}
	}
	if query.Limit == 0 {
		query.Limit = defaultTransactionLimit
	}

	return s.transactionRepo.ListByWalletID(ctx, wallet.ID, query)
}
