package analytics

import "context"

// AnalyticsService defines visit tracking and reporting
type AnalyticsService interface {
	// TrackVisit records a visit; a repeated visit by the same visitor is not an error.
	TrackVisit(ctx context.Context, blogID, forwardedFor, userAgent string) error
	// Report aggregates visitors to the user's published blogs.
	Report(ctx context.Context, userID string, days int) (*Report, error)
}

// VisitRepository defines the persistence of visits
type VisitRepository interface {
	// Create stores a visit or returns ErrDuplicateVisit
	Create(ctx context.Context, visit *Visit) error
	// ListByBlogIDs returns every visit of the given blogs
	ListByBlogIDs(ctx context.Context, blogIDs []string) ([]*Visit, error)
}
