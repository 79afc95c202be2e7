package models

import (
	"time"

	"github.com/genno-io/genno/internal/domain/conversions"
)

// ConversionModel is the GORM database model for conversion jobs
type ConversionModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	ClerkUserID string    `gorm:"not null;index;type:varchar(255)"`
	YoutubeURL  string    `gorm:"not null;type:varchar(500)"`
	Status      string    `gorm:"not null;type:varchar(20)"`
	BlogID      *string   `gorm:"type:uuid"`
	Error       *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ConversionModel) TableName() string {
	return "conversions"
}

// ToDomain converts GORM model to domain entity
func (m *ConversionModel) ToDomain() *conversions.Conversion {
	return &conversions.Conversion{
		ID:          m.ID,
		ClerkUserID: m.ClerkUserID,
		YoutubeURL:  m.YoutubeURL,
		Status:      m.Status,
		BlogID:      m.BlogID,
		Error:       m.Error,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ConversionModel) FromDomain(c *conversions.Conversion) {
	m.ID = c.ID
	m.ClerkUserID = c.ClerkUserID
	m.YoutubeURL = c.YoutubeURL
	m.Status = c.Status
	m.BlogID = c.BlogID
	m.Error = c.Error
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}
