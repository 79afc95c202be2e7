// Package profiles mirrors user accounts of the authentication provider.
package profiles

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/genno-io/genno/internal/pkg/validators"
)

// ErrNotFound is returned when no profile exists for a user
var ErrNotFound = errors.New("profile not found")

// User event types sent by the authentication provider
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Profile entity
type Profile struct {
	ClerkUserID     string  `validate:"required,max=255"`
	Email           string  `validate:"omitempty,email"`
	FirstName       *string `validate:"omitempty,max=255"`
	LastName        *string `validate:"omitempty,max=255"`
	Username        *string `validate:"omitempty,max=255"`
	ProfileImageURL *string `validate:"omitempty,url"`
	LastSignInAt    *time.Time
	EmailVerified   bool
	Banned          bool
	Metadata        json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate for validating Profile struct
func (p *Profile) Validate() error {
	return validators.Struct(p)
}

// DisplayName returns the best human readable name of the profile
func (p *Profile) DisplayName() string {
	switch {
	case p.FirstName != nil && p.LastName != nil:
		return *p.FirstName + " " + *p.LastName
	case p.FirstName != nil:
		return *p.FirstName
	case p.Username != nil:
		return *p.Username
	default:
		return p.Email
	}
}

// UserEvent is a webhook delivery of the authentication provider
type UserEvent struct {
	Type string        `json:"type"`
	Data UserEventData `json:"data"`
}

// EmailAddress is one address of a user
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
	Verification *struct {
		Status string `json:"status"`
	} `json:"verification"`
}

// UserEventData is the user object carried by a UserEvent
type UserEventData struct {
	ID              string          `json:"id"`
	EmailAddresses  []EmailAddress  `json:"email_addresses"`
	FirstName       *string         `json:"first_name"`
	LastName        *string         `json:"last_name"`
	Username        *string         `json:"username"`
	ImageURL        *string         `json:"image_url"`
	LastSignInAt    *int64          `json:"last_sign_in_at"`
	EmailVerified   bool            `json:"email_verified"`
	Banned          bool            `json:"banned"`
	PublicMetadata  json.RawMessage `json:"public_metadata"`
	PrivateMetadata json.RawMessage `json:"private_metadata"`
}

type profileMetadata struct {
	PublicMetadata  json.RawMessage `json:"public_metadata"`
	PrivateMetadata json.RawMessage `json:"private_metadata"`
}

var emptyObject = json.RawMessage(`{}`)

// ToProfile maps the event payload onto a profile. The first address is the primary email.
func (d *UserEventData) ToProfile(now time.Time) (*Profile, error) {
	p := &Profile{
		ClerkUserID:     d.ID,
		FirstName:       blankToNil(d.FirstName),
		LastName:        blankToNil(d.LastName),
		Username:        blankToNil(d.Username),
		ProfileImageURL: blankToNil(d.ImageURL),
		EmailVerified:   d.EmailVerified,
		Banned:          d.Banned,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if len(d.EmailAddresses) > 0 {
		primary := d.EmailAddresses[0]
		p.Email = primary.EmailAddress
		if primary.Verification != nil && primary.Verification.Status == "verified" {
			p.EmailVerified = true
		}
	}

	if d.LastSignInAt != nil {
		t := time.UnixMilli(*d.LastSignInAt).UTC()
		p.LastSignInAt = &t
	}

	meta := profileMetadata{PublicMetadata: emptyObject, PrivateMetadata: emptyObject}
	if len(d.PublicMetadata) > 0 && string(d.PublicMetadata) != "null" {
		meta.PublicMetadata = d.PublicMetadata
	}
	if len(d.PrivateMetadata) > 0 && string(d.PrivateMetadata) != "null" {
		meta.PrivateMetadata = d.PrivateMetadata
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	p.Metadata = raw

	return p, nil
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
