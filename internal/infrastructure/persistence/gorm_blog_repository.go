package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/infrastructure/persistence/models"
	"github.com/genno-io/genno/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormBlogRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormBlogRepository creates a new GORM-based BlogRepository implementation
func NewGormBlogRepository(db *gorm.DB, logger logger.Logger) (blogs.BlogRepository, error) {
	return &gormBlogRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormBlogRepository) Create(ctx context.Context, blog *blogs.Blog) error {
	if err := blog.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.BlogModel{}
	model.FromDomain(blog)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", blogs.ErrSlugTaken, blog.Slug)
		}
		return fmt.Errorf("failed to create blog: %w", err)
	}

	r.logger.Info("Created blog with id ", blog.ID)
	return nil
}

func (r *gormBlogRepository) GetByID(ctx context.Context, id string) (*blogs.Blog, error) {
	var model models.BlogModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", blogs.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch blog: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormBlogRepository) GetBySlug(ctx context.Context, slug string) (*blogs.Blog, error) {
	var model models.BlogModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: slug %s", blogs.ErrNotFound, slug)
		}
		return nil, fmt.Errorf("failed to fetch blog: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormBlogRepository) List(ctx context.Context, query *blogs.Query) ([]*blogs.Blog, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.BlogModel
	dbQuery := r.db.WithContext(ctx).Model(&models.BlogModel{}).
		Where("clerk_user_id = ?", query.ClerkUserID)

	switch query.Filter {
	case blogs.FilterPublished:
		dbQuery = dbQuery.Where("is_published = ?", true)
	case blogs.FilterDraft:
		dbQuery = dbQuery.Where("is_published = ?", false)
	}

	dbQuery = dbQuery.Order("created_at desc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch blogs: %w", err)
	}

	domainList := make([]*blogs.Blog, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormBlogRepository) Update(ctx context.Context, blog *blogs.Blog) error {
	if err := blog.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.BlogModel{}
	model.FromDomain(blog)

	res := r.db.WithContext(ctx).Model(&models.BlogModel{}).Where("id = ?", blog.ID).Select("*").Updates(model)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return fmt.Errorf("%w: %s", blogs.ErrSlugTaken, blog.Slug)
		}
		return fmt.Errorf("failed to update blog: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %s", blogs.ErrNotFound, blog.ID)
	}

	r.logger.Info("Updated blog with id ", blog.ID)
	return nil
}

func (r *gormBlogRepository) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BlogModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete blog: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %s", blogs.ErrNotFound, id)
	}

	r.logger.Info("Deleted blog with id ", id)
	return nil
}
