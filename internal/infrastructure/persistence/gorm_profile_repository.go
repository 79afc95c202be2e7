package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/infrastructure/persistence/models"
	"github.com/genno-io/genno/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormProfileRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProfileRepository creates a new GORM-based ProfileRepository implementation
func NewGormProfileRepository(db *gorm.DB, logger logger.Logger) (profiles.ProfileRepository, error) {
	return &gormProfileRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProfileRepository) Upsert(ctx context.Context, profile *profiles.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ProfileModel{}
	model.FromDomain(profile)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clerk_user_id"}},
		UpdateAll: true,
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	r.logger.Info("Upserted profile ", profile.ClerkUserID)
	return nil
}

func (r *gormProfileRepository) GetByUserID(ctx context.Context, userID string) (*profiles.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Where("clerk_user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", profiles.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return model.ToDomain(), nil
}

// DeleteByUserID removes a profile; deleting a missing profile is not an error.
func (r *gormProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Where("clerk_user_id = ?", userID).Delete(&models.ProfileModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	r.logger.Info("Deleted profile ", userID)
	return nil
}
