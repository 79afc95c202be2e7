package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/infrastructure/persistence/models"
	"github.com/genno-io/genno/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormConversionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormConversionRepository creates a new GORM-based ConversionRepository implementation
func NewGormConversionRepository(db *gorm.DB, logger logger.Logger) (conversions.ConversionRepository, error) {
	return &gormConversionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormConversionRepository) Create(ctx context.Context, conversion *conversions.Conversion) error {
	if err := conversion.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ConversionModel{}
	model.FromDomain(conversion)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create conversion: %w", err)
	}

	r.logger.Info("Created conversion with id ", conversion.ID)
	return nil
}

func (r *gormConversionRepository) GetByID(ctx context.Context, id string) (*conversions.Conversion, error) {
	var model models.ConversionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", conversions.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch conversion: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormConversionRepository) ListByUser(ctx context.Context, userID string) ([]*conversions.Conversion, error) {
	var modelList []*models.ConversionModel
	if err := r.db.WithContext(ctx).
		Where("clerk_user_id = ?", userID).
		Order("created_at desc").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch conversions: %w", err)
	}

	domainList := make([]*conversions.Conversion, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormConversionRepository) Update(ctx context.Context, conversion *conversions.Conversion) error {
	if err := conversion.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ConversionModel{}
	model.FromDomain(conversion)

	res := r.db.WithContext(ctx).Model(&models.ConversionModel{}).Where("id = ?", conversion.ID).Select("*").Updates(model)
	if res.Error != nil {
		return fmt.Errorf("failed to update conversion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", conversions.ErrNotFound, conversion.ID)
	}

	r.logger.Info("Updated conversion ", conversion.ID, " status ", conversion.Status)
	return nil
}
