package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/persistence/models"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormWalletRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormWalletRepository creates a new GORM-based WalletRepository implementation
func NewGormWalletRepository(db *gorm.DB, logger logger.Logger) (wallets.WalletRepository, error) {
	return &gormWalletRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormWalletRepository) Create(ctx context.Context, wallet *wallets.Wallet) error {
	// Validate domain entity (business rules)
	if err := wallet.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.WalletModel{}
	model.FromDomain(wallet)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return wallets.ErrDuplicateWalletNumber
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	r.logger.Info("Created wallet with number ", wallet.WalletNumber)
	return nil
}

func (r *gormWalletRepository) GetByUserID(ctx context.Context, userID string) (*wallets.Wallet, error) {
	var model models.WalletModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallets.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to fetch wallet: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormWalletRepository) GetByNumber(ctx context.Context, walletNumber string) (*wallets.Wallet, error) {
	var model models.WalletModel
	if err := r.db.WithContext(ctx).Where("wallet_number = ?", walletNumber).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallets.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to fetch wallet: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormWalletRepository) Transfer(ctx context.Context, senderNumber, recipientNumber string, amount decimal.Decimal, referenceStem string) (*wallets.TransferReceipt, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("transfer amount must be positive")
	}

	var receipt *wallets.TransferReceipt
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Deadlock prevention: always acquire row locks in lexical wallet
		// number order so A->B and B->A transfers cannot wait on each other.
		first, second := senderNumber, recipientNumber
		if second < first {
			first, second = second, first
		}

		firstWallet, err := lockWallet(tx, "wallet_number = ?", first)
		if err != nil {
			return err
		}
		secondWallet, err := lockWallet(tx, "wallet_number = ?", second)
		if err != nil {
			return err
		}

		sender, recipient := firstWallet, secondWallet
		if sender.WalletNumber != senderNumber {
			sender, recipient = secondWallet, firstWallet
		}

		if sender.Balance.LessThan(amount) {
			return wallets.ErrInsufficientBalance
		}

		now := time.Now().UTC()
		outLeg := &wallets.Transaction{
			ID:        uuid.New().String(),
			WalletID:  sender.ID,
			Type:      wallets.TypeTransferOut,
			Amount:    amount,
			Reference: referenceStem + "_OUT",
			Status:    wallets.StatusSuccess,
			Meta:      &wallets.TransactionMeta{RecipientWallet: recipient.WalletNumber},
			CreatedAt: now,
			UpdatedAt: now,
		}
		inLeg := &wallets.Transaction{
			ID:        uuid.New().String(),
			WalletID:  recipient.ID,
			Type:      wallets.TypeTransferIn,
			Amount:    amount,
			Reference: referenceStem + "_IN",
			Status:    wallets.StatusSuccess,
			Meta:      &wallets.TransactionMeta{SenderWallet: sender.WalletNumber},
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := updateBalance(tx, sender.ID, sender.Balance.Sub(amount)); err != nil {
			return err
		}
		if err := updateBalance(tx, recipient.ID, recipient.Balance.Add(amount)); err != nil {
			return err
		}

		for _, leg := range []*wallets.Transaction{outLeg, inLeg} {
			model := &models.TransactionModel{}
			if err := model.FromDomain(leg); err != nil {
				return err
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to create transaction leg: %w", err)
			}
		}

		receipt = &wallets.TransferReceipt{
			Reference:       referenceStem,
			Amount:          amount,
			SenderWallet:    sender.WalletNumber,
			RecipientWallet: recipient.WalletNumber,
			OutTransaction:  outLeg,
			InTransaction:   inLeg,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Transfer completed with reference ", referenceStem)
	return receipt, nil
}

func (r *gormWalletRepository) CreditDeposit(ctx context.Context, reference string) (*wallets.Transaction, error) {
	var credited *wallets.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txnModel models.TransactionModel
		if err := tx.Where("reference = ?", reference).First(&txnModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return wallets.ErrTransactionNotFound
			}
			return fmt.Errorf("failed to fetch transaction: %w", err)
		}

		if txnModel.Status == wallets.StatusSuccess {
			return wallets.ErrTransactionAlreadyProcessed
		}

		walletModel, err := lockWallet(tx, "id = ?", txnModel.WalletID)
		if err != nil {
			return err
		}

		if err := updateBalance(tx, walletModel.ID, walletModel.Balance.Add(txnModel.Amount)); err != nil {
			return err
		}

		if err := tx.Model(&models.TransactionModel{}).
			Where("reference = ?", reference).
			Update("status", wallets.StatusSuccess).Error; err != nil {
			return fmt.Errorf("failed to update transaction status: %w", err)
		}

		txnModel.Status = wallets.StatusSuccess
		credited, err = txnModel.ToDomain()
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Credited deposit with reference ", reference)
	return credited, nil
}

// lockWallet loads a wallet row, holding it FOR UPDATE on dialects that
// support row locks. SQLite serializes writers so no lock is needed there.
func lockWallet(tx *gorm.DB, condition string, arg interface{}) (*models.WalletModel, error) {
	query := tx.Where(condition, arg)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.WalletModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallets.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to fetch wallet: %w", err)
	}
	return &model, nil
}

func updateBalance(tx *gorm.DB, walletID string, balance decimal.Decimal) error {
	if err := tx.Model(&models.WalletModel{}).
		Where("id = ?", walletID).
		Update("balance", balance).Error; err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}
	return nil
}
