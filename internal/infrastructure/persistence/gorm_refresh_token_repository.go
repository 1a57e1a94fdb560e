package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/persistence/models"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormRefreshTokenRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRefreshTokenRepository creates a new GORM-based RefreshTokenRepository implementation
func NewGormRefreshTokenRepository(db *gorm.DB, logger logger.Logger) (users.RefreshTokenRepository, error) {
	return &gormRefreshTokenRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRefreshTokenRepository) Create(ctx context.Context, token *users.RefreshToken) error {
	if err := token.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.RefreshTokenModel{}
	model.FromDomain(token)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	r.logger.Info("Created refresh token for user ", token.UserID)
	return nil
}

func (r *gormRefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*users.RefreshToken, error) {
	var model models.RefreshTokenModel
	if err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, users.ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("failed to fetch refresh token: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormRefreshTokenRepository) RevokeByID(ctx context.Context, tokenID string) error {
	result := r.db.WithContext(ctx).Model(&models.RefreshTokenModel{}).
		Where("id = ?", tokenID).
		Update("revoked", true)
	if result.Error != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return users.ErrRefreshTokenInvalid
	}

	r.logger.Info("Revoked refresh token with id ", tokenID)
	return nil
}
