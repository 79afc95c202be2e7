package blogs

import (
	"context"

	"github.com/genno-io/genno/internal/domain/profiles"
)

// PublicBlog is a published blog together with its author, when known
type PublicBlog struct {
	Blog   *Blog
	Author *profiles.Profile
}

// BlogService defines the blog operations of the dashboard and the public site.
type BlogService interface {
	// Create stores a new blog owned by userID.
	Create(ctx context.Context, userID string, in *Input) (*Blog, error)

	// List returns the user's blogs matching query, newest first.
	List(ctx context.Context, query *Query) ([]*Blog, error)

	// GetForOwner finds a blog of userID by id or slug.
	GetForOwner(ctx context.Context, userID, ref string) (*Blog, error)

	// GetPublished returns a published blog by slug for anonymous readers.
	GetPublished(ctx context.Context, slug string) (*PublicBlog, error)

	// Update replaces the editable fields of a blog owned by userID.
	Update(ctx context.Context, userID, ref string, in *Input) (*Blog, error)

	// TogglePublish flips the published flag of a blog owned by userID.
	TogglePublish(ctx context.Context, userID, ref string) (*Blog, error)

	// Delete removes a blog owned by userID.
	Delete(ctx context.Context, userID, ref string) error

	// Ingest stores a blog delivered by the AI service and completes its conversion.
	Ingest(ctx context.Context, in *IngestInput) (*Blog, error)
}

// BlogRepository defines the persistence of blogs
type BlogRepository interface {
	Create(ctx context.Context, blog *Blog) error
	GetByID(ctx context.Context, id string) (*Blog, error)
	GetBySlug(ctx context.Context, slug string) (*Blog, error)
	List(ctx context.Context, query *Query) ([]*Blog, error)
	Update(ctx context.Context, blog *Blog) error
	DeleteByID(ctx context.Context, id string) error
}
