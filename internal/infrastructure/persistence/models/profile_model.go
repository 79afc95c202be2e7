package models

import (
	"encoding/json"
	"time"

	"github.com/genno-io/genno/internal/domain/profiles"
)

// ProfileModel is the GORM database model for user profiles
type ProfileModel struct {
	ClerkUserID     string  `gorm:"primaryKey;type:varchar(255)"`
	Email           string  `gorm:"type:varchar(320);index"`
	FirstName       *string `gorm:"type:varchar(255)"`
	LastName        *string `gorm:"type:varchar(255)"`
	Username        *string `gorm:"type:varchar(255)"`
	ProfileImageURL *string `gorm:"type:varchar(1000)"`
	LastSignInAt    *time.Time
	EmailVerified   bool   `gorm:"not null"`
	Banned          bool   `gorm:"not null"`
	Metadata        string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts GORM model to domain entity
func (m *ProfileModel) ToDomain() *profiles.Profile {
	p := &profiles.Profile{
		ClerkUserID:     m.ClerkUserID,
		Email:           m.Email,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Username:        m.Username,
		ProfileImageURL: m.ProfileImageURL,
		LastSignInAt:    m.LastSignInAt,
		EmailVerified:   m.EmailVerified,
		Banned:          m.Banned,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Metadata != "" {
		p.Metadata = json.RawMessage(m.Metadata)
	}
	return p
}

// FromDomain converts domain entity to GORM model
func (m *ProfileModel) FromDomain(p *profiles.Profile) {
	m.ClerkUserID = p.ClerkUserID
	m.Email = p.Email
	m.FirstName = p.FirstName
	m.LastName = p.LastName
	m.Username = p.Username
	m.ProfileImageURL = p.ProfileImageURL
	m.LastSignInAt = p.LastSignInAt
	m.EmailVerified = p.EmailVerified
	m.Banned = p.Banned
	m.Metadata = string(p.Metadata)
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
