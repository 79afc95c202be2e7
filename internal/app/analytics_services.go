package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/genno-io/genno/internal/domain/analytics"
	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/pkg/logger"

	"github.com/google/uuid"
)

// ErrMissingBlogID is returned when a visit names no blog
var ErrMissingBlogID = errors.New("blogId is required")

// analyticsService implements the AnalyticsService interface
type analyticsService struct {
	visitRepo analytics.VisitRepository
	blogRepo  blogs.BlogRepository
	logger    logger.Logger
	now       func() time.Time
}

// NewAnalyticsService creates a new instance of AnalyticsService
func NewAnalyticsService(visitRepo analytics.VisitRepository, blogRepo blogs.BlogRepository, logger logger.Logger) (analytics.AnalyticsService, error) {
	return &analyticsService{
		visitRepo: visitRepo,
		blogRepo:  blogRepo,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func (s *analyticsService) TrackVisit(ctx context.Context, blogID, forwardedFor, userAgent string) error {
	blogID = strings.TrimSpace(blogID)
	if blogID == "" {
		return ErrMissingBlogID
	}

	visit := &analytics.Visit{
		ID:        uuid.NewString(),
		BlogID:    blogID,
		VisitorID: analytics.VisitorID(forwardedFor, userAgent),
		VisitedAt: s.now().UTC(),
	}

	if err := s.visitRepo.Create(ctx, visit); err != nil {
		if errors.Is(err, analytics.ErrDuplicateVisit) {
			return nil
		}
		return fmt.Errorf("failed to track visit: %w", err)
	}
	return nil
}

func (s *analyticsService) Report(ctx context.Context, userID string, days int) (*analytics.Report, error) {
	if days <= 0 {
		days = analytics.DefaultReportDays
	}

	published, err := s.blogRepo.List(ctx, &blogs.Query{ClerkUserID: userID, Filter: blogs.FilterPublished})
	if err != nil {
		return nil, fmt.Errorf("failed to list published blogs: %w", err)
	}

	summaries := make([]analytics.PublishedBlog, len(published))
	ids := make([]string, len(published))
	for i, b := range published {
		summaries[i] = analytics.PublishedBlog{
			ID:          b.ID,
			ClerkUserID: b.ClerkUserID,
			Title:       b.Title,
			Slug:        b.Slug,
			CreatedAt:   b.CreatedAt,
		}
		ids[i] = b.ID
	}

	visits, err := s.visitRepo.ListByBlogIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}

	return analytics.BuildReport(summaries, visits, days, s.now().UTC()), nil
}
