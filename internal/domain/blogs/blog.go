// Package blogs holds blog posts generated from videos or written by hand.
package blogs

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/genno-io/genno/internal/pkg/validators"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no blog matches
	ErrNotFound = errors.New("blog not found")
	// ErrForbidden is returned when a user touches a blog they do not own
	ErrForbidden = errors.New("blog belongs to another user")
	// ErrSlugTaken is returned when a slug is already used by another blog
	ErrSlugTaken = errors.New("slug already in use")
	// ErrInvalid is returned when a blog fails field validation
	ErrInvalid = errors.New("invalid blog")
)

// Publish filters
const (
	FilterAll       = "all"
	FilterPublished = "published"
	FilterDraft     = "draft"
)

// Slug limits
const (
	MaxBaseSlugLen   = 100
	SlugSuffixLen    = 8
	fallbackSlugBase = "post"
)

// Blog entity
type Blog struct {
	ID           string   `validate:"required,uuid4"`
	ClerkUserID  string   `validate:"required,max=255"`
	Title        string   `validate:"required,max=500"`
	Slug         string   `validate:"required,max=120"`
	Content      string   `validate:"required"`
	Excerpt      *string  `validate:"omitempty,max=2000"`
	YoutubeURL   *string  `validate:"omitempty,url"`
	ThumbnailURL *string  `validate:"omitempty,url"`
	Tags         []string `validate:"dive,max=64"`
	IsPublished  bool
	CreatedAt    time.Time `validate:"required"`
	UpdatedAt    time.Time `validate:"required"`
}

// Validate for validating Blog struct
func (b *Blog) Validate() error {
	if err := validators.Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Input carries the caller-editable fields of a blog
type Input struct {
	Title        string
	Content      string
	Slug         string
	Excerpt      *string
	YoutubeURL   *string
	ThumbnailURL *string
	Tags         []string
	IsPublished  bool
}

// IngestInput is a finished blog delivered by the AI service
type IngestInput struct {
	Input
	ClerkUserID  string
	ConversionID string
}

// Query filters a blog listing
type Query struct {
	ClerkUserID string `validate:"required"`
	Filter      string `validate:"omitempty,oneof=all published draft"`
	Limit       int    `validate:"omitempty,gt=0"`
	Offset      int    `validate:"omitempty,gte=0"`
}

// NewQuery creates a query listing every blog of a user
func NewQuery(userID string) *Query {
	return &Query{ClerkUserID: userID, Filter: FilterAll}
}

// Validate for validating Query struct
func (q *Query) Validate() error {
	return validators.Struct(q)
}

// New builds a blog owned by userID from in
func New(userID string, in *Input, now time.Time) *Blog {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = GenerateSlug(in.Title)
	}

	return &Blog{
		ID:           uuid.NewString(),
		ClerkUserID:  userID,
		Title:        strings.TrimSpace(in.Title),
		Slug:         slug,
		Content:      in.Content,
		Excerpt:      nonEmpty(in.Excerpt),
		YoutubeURL:   nonEmpty(in.YoutubeURL),
		ThumbnailURL: nonEmpty(in.ThumbnailURL),
		Tags:         NormalizeTags(in.Tags),
		IsPublished:  in.IsPublished,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Apply overwrites the editable fields of b with in. An empty slug keeps the current one.
func (b *Blog) Apply(in *Input, now time.Time) {
	b.Title = strings.TrimSpace(in.Title)
	b.Content = in.Content
	if s := strings.TrimSpace(in.Slug); s != "" {
		b.Slug = s
	}
	b.Excerpt = nonEmpty(in.Excerpt)
	b.YoutubeURL = nonEmpty(in.YoutubeURL)
	b.ThumbnailURL = nonEmpty(in.ThumbnailURL)
	b.Tags = NormalizeTags(in.Tags)
	b.IsPublished = in.IsPublished
	b.UpdatedAt = now
}

// OwnedBy reports whether userID owns b
func (b *Blog) OwnedBy(userID string) bool {
	return b.ClerkUserID == userID
}

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// BaseSlug lowercases title, turns runs of other characters into dashes and trims them
func BaseSlug(title string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxBaseSlugLen {
		s = strings.TrimRight(s[:MaxBaseSlugLen], "-")
	}
	return s
}

// GenerateSlug returns BaseSlug(title) with a random suffix
func GenerateSlug(title string) string {
	base := BaseSlug(title)
	if base == "" {
		base = fallbackSlugBase
	}
	return base + "-" + randomSuffix()
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:SlugSuffixLen]
}

// NormalizeTags trims tags and drops blank ones
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// IsID reports whether ref looks like a blog id rather than a slug
func IsID(ref string) bool {
	_, err := uuid.Parse(ref)
	return err == nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
