package models

import (
	"time"

	"github.com/genno-io/genno/internal/domain/analytics"
)

// VisitModel is the GORM database model for blog visits.
// A visitor is stored once per blog.
type VisitModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	BlogID    string    `gorm:"not null;uniqueIndex:idx_blog_visitor;type:varchar(255)"`
	VisitorID string    `gorm:"not null;uniqueIndex:idx_blog_visitor;type:varchar(16)"`
	VisitedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (VisitModel) TableName() string {
	return "blog_analytics"
}

// ToDomain converts GORM model to domain entity
func (m *VisitModel) ToDomain() *analytics.Visit {
	return &analytics.Visit{
		ID:        m.ID,
		BlogID:    m.BlogID,
		VisitorID: m.VisitorID,
		VisitedAt: m.VisitedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *VisitModel) FromDomain(v *analytics.Visit) {
	m.ID = v.ID
	m.BlogID = v.BlogID
	m.VisitorID = v.VisitorID
	m.VisitedAt = v.VisitedAt
}
