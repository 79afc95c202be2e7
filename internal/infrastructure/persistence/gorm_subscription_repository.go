package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/infrastructure/persistence/models"
	"github.com/genno-io/genno/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormSubscriptionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSubscriptionRepository creates a new GORM-based SubscriptionRepository implementation
func NewGormSubscriptionRepository(db *gorm.DB, logger logger.Logger) (subscriptions.SubscriptionRepository, error) {
	return &gormSubscriptionRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Upsert keys on the provider subscription id; a redelivered created event overwrites the row.
func (r *gormSubscriptionRepository) Upsert(ctx context.Context, sub *subscriptions.Subscription) error {
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SubscriptionModel{}
	model.FromDomain(sub)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "paddle_subscription_id"}},
		UpdateAll: true,
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	r.logger.Info("Upserted subscription ", sub.PaddleSubscriptionID)
	return nil
}

func (r *gormSubscriptionRepository) GetByPaddleID(ctx context.Context, paddleSubscriptionID string) (*subscriptions.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).Where("paddle_subscription_id = ?", paddleSubscriptionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", subscriptions.ErrNotFound, paddleSubscriptionID)
		}
		return nil, fmt.Errorf("failed to fetch subscription: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSubscriptionRepository) Update(ctx context.Context, sub *subscriptions.Subscription) error {
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SubscriptionModel{}
	model.FromDomain(sub)

	res := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).Where("id = ?", sub.ID).Select("*").Updates(model)
	if res.Error != nil {
		return fmt.Errorf("failed to update subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", subscriptions.ErrNotFound, sub.PaddleSubscriptionID)
	}

	r.logger.Info("Updated subscription ", sub.PaddleSubscriptionID, " status ", sub.Status)
	return nil
}

func (r *gormSubscriptionRepository) LatestForUser(ctx context.Context, userID string) (*subscriptions.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("clerk_user_id = ?", userID).
		Order("created_at desc").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", subscriptions.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to fetch subscription: %w", err)
	}
	return model.ToDomain(), nil
}
