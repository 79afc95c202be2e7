package conversions

import "context"

// ConversionService defines the conversion workflow
type ConversionService interface {
	// Submit charges one credit and hands the video to the AI service.
	// When the AI service cannot be reached the credit is refunded and ErrWebhookFailed is returned.
	Submit(ctx context.Context, userID, youtubeURL string) (*Conversion, error)
	Get(ctx context.Context, userID, id string) (*Conversion, error)
	List(ctx context.Context, userID string) ([]*Conversion, error)
	// Complete marks an open conversion owned by userID as done with blogID
	Complete(ctx context.Context, userID, id, blogID string) error
}

// ConversionRepository defines the persistence of conversions
type ConversionRepository interface {
	Create(ctx context.Context, conversion *Conversion) error
	GetByID(ctx context.Context, id string) (*Conversion, error)
	ListByUser(ctx context.Context, userID string) ([]*Conversion, error)
	Update(ctx context.Context, conversion *Conversion) error
}

// AIWebhookConnector delivers jobs to the AI service
type AIWebhookConnector interface {
	Submit(ctx context.Context, req *WebhookRequest) error
}
