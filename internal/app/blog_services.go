package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/pkg/logger"
)

// slugAttempts bounds retries when a generated slug collides
const slugAttempts = 3

// ErrMissingField is returned when a required blog field is empty
var ErrMissingField = errors.New("missing required field")

// blogService implements the BlogService interface
type blogService struct {
	blogRepo          blogs.BlogRepository
	profileRepo       profiles.ProfileRepository
	conversionService conversions.ConversionService
	logger            logger.Logger
}

// NewBlogService creates a new instance of BlogService.
// conversionService may be nil when ingested blogs should not complete conversions.
func NewBlogService(blogRepo blogs.BlogRepository, profileRepo profiles.ProfileRepository, conversionService conversions.ConversionService, logger logger.Logger) (blogs.BlogService, error) {
	return &blogService{
		blogRepo:          blogRepo,
		profileRepo:       profileRepo,
		conversionService: conversionService,
		logger:            logger,
	}, nil
}

func (s *blogService) Create(ctx context.Context, userID string, in *blogs.Input) (*blogs.Blog, error) {
	if err := requireTitleAndContent(in); err != nil {
		return nil, err
	}

	blog := blogs.New(userID, in, time.Now().UTC())
	if err := blog.Validate(); err != nil {
		return nil, err
	}
	if err := s.store(ctx, blog, strings.TrimSpace(in.Slug) == ""); err != nil {
		return nil, err
	}
	return blog, nil
}

// store inserts blog, drawing a new suffix when a generated slug is already taken
func (s *blogService) store(ctx context.Context, blog *blogs.Blog, generated bool) error {
	for attempt := 1; ; attempt++ {
		err := s.blogRepo.Create(ctx, blog)
		if err == nil {
			return nil
		}
		if !generated || !errors.Is(err, blogs.ErrSlugTaken) || attempt == slugAttempts {
			return err
		}
		s.logger.Warn("generated slug collided, retrying", "slug", blog.Slug)
		blog.Slug = blogs.GenerateSlug(blog.Title)
	}
}

func (s *blogService) List(ctx context.Context, query *blogs.Query) ([]*blogs.Blog, error) {
	if query.Filter == "" {
		query.Filter = blogs.FilterAll
	}
	return s.blogRepo.List(ctx, query)
}

// GetForOwner matches ids first, then slugs. Blogs of other users read as not found.
func (s *blogService) GetForOwner(ctx context.Context, userID, ref string) (*blogs.Blog, error) {
	var blog *blogs.Blog
	var err error
	if blogs.IsID(ref) {
		blog, err = s.blogRepo.GetByID(ctx, ref)
		if errors.Is(err, blogs.ErrNotFound) {
			blog, err = s.blogRepo.GetBySlug(ctx, ref)
		}
	} else {
		blog, err = s.blogRepo.GetBySlug(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	if !blog.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: %s", blogs.ErrNotFound, ref)
	}
	return blog, nil
}

func (s *blogService) GetPublished(ctx context.Context, slug string) (*blogs.PublicBlog, error) {
	blog, err := s.blogRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !blog.IsPublished {
		return nil, fmt.Errorf("%w: %s", blogs.ErrNotFound, slug)
	}

	public := &blogs.PublicBlog{Blog: blog}
	author, err := s.profileRepo.GetByUserID(ctx, blog.ClerkUserID)
	switch {
	case err == nil:
		public.Author = author
	case errors.Is(err, profiles.ErrNotFound):
	default:
		s.logger.Warn("author lookup failed", "blog_id", blog.ID, "error", err)
	}
	return public, nil
}

func (s *blogService) Update(ctx context.Context, userID, ref string, in *blogs.Input) (*blogs.Blog, error) {
	if err := requireTitleAndContent(in); err != nil {
		return nil, err
	}

	blog, err := s.GetForOwner(ctx, userID, ref)
	if err != nil {
		return nil, err
	}

	blog.Apply(in, time.Now().UTC())
	if err := blog.Validate(); err != nil {
		return nil, err
	}
	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *blogService) TogglePublish(ctx context.Context, userID, ref string) (*blogs.Blog, error) {
	blog, err := s.GetForOwner(ctx, userID, ref)
	if err != nil {
		return nil, err
	}

	blog.IsPublished = !blog.IsPublished
	blog.UpdatedAt = time.Now().UTC()
	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}

	s.logger.Info("blog publish toggled", "blog_id", blog.ID, "published", blog.IsPublished)
	return blog, nil
}

func (s *blogService) Delete(ctx context.Context, userID, ref string) error {
	blog, err := s.GetForOwner(ctx, userID, ref)
	if err != nil {
		return err
	}
	return s.blogRepo.DeleteByID(ctx, blog.ID)
}

// Ingest always stores a draft. A failure to complete the conversion is logged only.
func (s *blogService) Ingest(ctx context.Context, in *blogs.IngestInput) (*blogs.Blog, error) {
	if strings.TrimSpace(in.ClerkUserID) == "" {
		return nil, fmt.Errorf("%w: clerk_user_id", ErrMissingField)
	}
	if err := requireTitleAndContent(&in.Input); err != nil {
		return nil, err
	}

	in.IsPublished = false
	blog := blogs.New(in.ClerkUserID, &in.Input, time.Now().UTC())
	if err := blog.Validate(); err != nil {
		return nil, err
	}
	if err := s.store(ctx, blog, strings.TrimSpace(in.Slug) == ""); err != nil {
		return nil, err
	}
	s.logger.Info("blog ingested", "blog_id", blog.ID, "user_id", blog.ClerkUserID, "slug", blog.Slug)

	if in.ConversionID != "" && s.conversionService != nil {
		if err := s.conversionService.Complete(ctx, blog.ClerkUserID, in.ConversionID, blog.ID); err != nil {
			s.logger.Warn("could not complete conversion", "conversion_id", in.ConversionID, "error", err)
		}
	}
	return blog, nil
}

func requireTitleAndContent(in *blogs.Input) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content", ErrMissingField)
	}
	return nil
}
