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

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *users.User) error {
	// Validate domain entity (business rules)
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.UserModel{}
	model.FromDomain(user)

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("Created user with id ", user.ID)
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, userID string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return model.ToDomain(), nil
}
