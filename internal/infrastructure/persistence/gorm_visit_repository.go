package persistence

import (
	"context"
	"fmt"

	"github.com/genno-io/genno/internal/domain/analytics"
	"github.com/genno-io/genno/internal/infrastructure/persistence/models"
	"github.com/genno-io/genno/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormVisitRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormVisitRepository creates a new GORM-based VisitRepository implementation
func NewGormVisitRepository(db *gorm.DB, logger logger.Logger) (analytics.VisitRepository, error) {
	return &gormVisitRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormVisitRepository) Create(ctx context.Context, visit *analytics.Visit) error {
	if err := visit.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.VisitModel{}
	model.FromDomain(visit)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return analytics.ErrDuplicateVisit
		}
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

func (r *gormVisitRepository) ListByBlogIDs(ctx context.Context, blogIDs []string) ([]*analytics.Visit, error) {
	if len(blogIDs) == 0 {
		return []*analytics.Visit{}, nil
	}

	var modelList []*models.VisitModel
	if err := r.db.WithContext(ctx).
		Where("blog_id IN ?", blogIDs).
		Order("visited_at asc").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch visits: %w", err)
	}

	domainList := make([]*analytics.Visit, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
