package models

import (
	"time"

	"github.com/genno-io/genno/internal/domain/blogs"
)

// BlogModel is the GORM database model for blogs (infrastructure concern)
type BlogModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	ClerkUserID  string    `gorm:"not null;index;type:varchar(255)"`
	Title        string    `gorm:"not null;type:varchar(500)"`
	Slug         string    `gorm:"not null;uniqueIndex;type:varchar(120)"`
	Content      string    `gorm:"not null;type:text"`
	Excerpt      *string   `gorm:"type:text"`
	YoutubeURL   *string   `gorm:"type:varchar(500)"`
	ThumbnailURL *string   `gorm:"type:varchar(1000)"`
	Tags         []string  `gorm:"serializer:json;type:text"`
	IsPublished  bool      `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (BlogModel) TableName() string {
	return "blogs"
}

// ToDomain converts GORM model to domain entity
func (m *BlogModel) ToDomain() *blogs.Blog {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return &blogs.Blog{
		ID:           m.ID,
		ClerkUserID:  m.ClerkUserID,
		Title:        m.Title,
		Slug:         m.Slug,
		Content:      m.Content,
		Excerpt:      m.Excerpt,
		YoutubeURL:   m.YoutubeURL,
		ThumbnailURL: m.ThumbnailURL,
		Tags:         tags,
		IsPublished:  m.IsPublished,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *BlogModel) FromDomain(b *blogs.Blog) {
	m.ID = b.ID
	m.ClerkUserID = b.ClerkUserID
	m.Title = b.Title
	m.Slug = b.Slug
	m.Content = b.Content
	m.Excerpt = b.Excerpt
	m.YoutubeURL = b.YoutubeURL
	m.ThumbnailURL = b.ThumbnailURL
	m.Tags = b.Tags
	m.IsPublished = b.IsPublished
	m.CreatedAt = b.CreatedAt
	m.UpdatedAt = b.UpdatedAt
}
