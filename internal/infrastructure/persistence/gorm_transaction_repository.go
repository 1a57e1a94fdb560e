package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/persistence/models"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormTransactionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormTransactionRepository creates a new GORM-based TransactionRepository implementation
func NewGormTransactionRepository(db *gorm.DB, logger logger.Logger) (wallets.TransactionRepository, error) {
	return &gormTransactionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormTransactionRepository) Create(ctx context.Context, transaction *wallets.Transaction) error {
	// Validate domain entity (business rules)
	if err := transaction.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.TransactionModel{}
	if err := model.FromDomain(transaction); err != nil {
		return err
	}

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	r.logger.Info("Created transaction with reference ", transaction.Reference)
	return nil
}

func (r *gormTransactionRepository) GetByReference(ctx context.Context, reference string) (*wallets.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wallets.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return model.ToDomain()
}

func (r *gormTransactionRepository) ListByWalletID(ctx context.Context, walletID string, query *wallets.TransactionQuery) ([]*wallets.Transaction, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(query.Limit).
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	// Convert to domain models
	domainList := make([]*wallets.Transaction, len(modelList))
	for i, model := range modelList {
		transaction, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		domainList[i] = transaction
	}

	return domainList, nil
}

func (r *gormTransactionRepository) MarkFailed(ctx context.Context, reference string) (*wallets.Transaction, error) {
	var failed *wallets.Transaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.TransactionModel
		if err := tx.Where("reference = ?", reference).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return wallets.ErrTransactionNotFound
			}
			return fmt.Errorf("failed to fetch transaction: %w", err)
		}

		switch model.Status {
		case wallets.StatusFailed:
			return wallets.ErrTransactionAlreadyFailed
		case wallets.StatusSuccess:
			return wallets.ErrTransactionAlreadySuccessful
		}

		if err := tx.Model(&models.TransactionModel{}).
			Where("reference = ?", reference).
			Update("status", wallets.StatusFailed).Error; err != nil {
			return fmt.Errorf("failed to update transaction status: %w", err)
		}

		model.Status = wallets.StatusFailed
		var err error
		failed, err = model.ToDomain()
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Marked transaction as failed with reference ", reference)
	return failed, nil
}
