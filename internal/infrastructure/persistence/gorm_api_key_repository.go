package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/persistence/models"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAPIKeyRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAPIKeyRepository creates a new GORM-based APIKeyRepository implementation
func NewGormAPIKeyRepository(db *gorm.DB, logger logger.Logger) (apikeys.APIKeyRepository, error) {
	return &gormAPIKeyRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAPIKeyRepository) Create(ctx context.Context, key *apikeys.APIKey) error {
	// Validate domain entity (business rules)
	if err := key.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.APIKeyModel{}
	if err := model.FromDomain(key); err != nil {
		return err
	}

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}

	r.logger.Info("Created api key with id ", key.ID)
	return nil
}

func (r *gormAPIKeyRepository) GetByIDForUser(ctx context.Context, id, userID string) (*apikeys.APIKey, error) {
	var model models.APIKeyModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apikeys.ErrAPIKeyNotFound
		}
		return nil, fmt.Errorf("failed to fetch api key: %w", err)
	}
	return model.ToDomain()
}

func (r *gormAPIKeyRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*apikeys.APIKey, error) {
	var modelList []*models.APIKeyModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch api keys: %w", err)
	}

	// Convert to domain models
	domainList := make([]*apikeys.APIKey, len(modelList))
	for i, model := range modelList {
		key, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		domainList[i] = key
	}

	return domainList, nil
}

func (r *gormAPIKeyRepository) ListActiveByPrefix(ctx context.Context, prefix string, now time.Time) ([]*apikeys.APIKey, error) {
	var modelList []*models.APIKeyModel
	if err := r.db.WithContext(ctx).
		Where("key_prefix = ? AND revoked = ? AND expires_at > ?", prefix, false, now).
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch api key candidates: %w", err)
	}

	domainList := make([]*apikeys.APIKey, len(modelList))
	for i, model := range modelList {
		key, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		domainList[i] = key
	}

	return domainList, nil
}

func (r *gormAPIKeyRepository) CountActiveByUserID(ctx context.Context, userID string, now time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.APIKeyModel{}).
		Where("user_id = ? AND revoked = ? AND expires_at > ?", userID, false, now).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active api keys: %w", err)
	}
	return count, nil
}

func (r *gormAPIKeyRepository) RevokeByID(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.APIKeyModel{}).
		Where("id = ?", id).
		Update("revoked", true)
	if result.Error != nil {
		return fmt.Errorf("failed to revoke api key: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apikeys.ErrAPIKeyNotFound
	}

	r.logger.Info("Revoked api key with id ", id)
	return nil
}
