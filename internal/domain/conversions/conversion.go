// Package conversions tracks video-to-blog jobs sent to the AI service.
package conversions

import (
	"errors"
	"time"

	"github.com/genno-io/genno/internal/pkg/validators"
	"github.com/google/uuid"
)

// Conversion statuses
const (
	StatusPending   = "pending"
	StatusSubmitted = "submitted"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Credit bookkeeping of a conversion
const (
	CreditCost   = 1
	CreditReason = "Video conversion"
	RefundReason = "Refund: video conversion failed"
)

var (
	// ErrNotFound is returned when no conversion matches
	ErrNotFound = errors.New("conversion not found")
	// ErrInvalidURL is returned for links that are not YouTube videos
	ErrInvalidURL = errors.New("not a YouTube video URL")
	// ErrWebhookFailed is returned when the AI service did not accept the job
	ErrWebhookFailed = errors.New("AI webhook request failed")
	// ErrOwnerMismatch is returned when a conversion is completed for a user other than its owner
	ErrOwnerMismatch = errors.New("conversion belongs to another user")
)

// Conversion entity
type Conversion struct {
	ID          string  `validate:"required,uuid4"`
	ClerkUserID string  `validate:"required,max=255"`
	YoutubeURL  string  `validate:"required,youtubeURL"`
	Status      string  `validate:"required,oneof=pending submitted completed failed"`
	BlogID      *string `validate:"omitempty,uuid4"`
	Error       *string
	CreatedAt   time.Time `validate:"required"`
	UpdatedAt   time.Time `validate:"required"`
}

// New creates a pending conversion
func New(userID, youtubeURL string, now time.Time) *Conversion {
	return &Conversion{
		ID:          uuid.NewString(),
		ClerkUserID: userID,
		YoutubeURL:  youtubeURL,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate for validating Conversion struct
func (c *Conversion) Validate() error {
	return validators.Struct(c)
}

// MarkSubmitted records that the AI service accepted the job
func (c *Conversion) MarkSubmitted(now time.Time) {
	c.Status = StatusSubmitted
	c.UpdatedAt = now
}

// MarkFailed records why the job could not be run
func (c *Conversion) MarkFailed(reason string, now time.Time) {
	c.Status = StatusFailed
	c.Error = &reason
	c.UpdatedAt = now
}

// MarkCompleted links the finished blog
func (c *Conversion) MarkCompleted(blogID string, now time.Time) {
	c.Status = StatusCompleted
	c.BlogID = &blogID
	c.Error = nil
	c.UpdatedAt = now
}

// IsOpen reports whether the job still awaits a result
func (c *Conversion) IsOpen() bool {
	return c.Status == StatusPending || c.Status == StatusSubmitted
}

// WebhookRequest is the job sent to the AI service
type WebhookRequest struct {
	VideoURL     string `json:"video_url"`
	ClerkUserID  string `json:"clerk_user_id"`
	ConversionID string `json:"conversion_id"`
	CallbackURL  string `json:"callback_url,omitempty"`
}
