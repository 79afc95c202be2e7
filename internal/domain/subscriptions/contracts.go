package subscriptions

import "context"

// SubscriptionService applies payment provider events and serves the subscription page
type SubscriptionService interface {
	// HandleEvent applies a webhook event. Unknown event types are acknowledged without changes.
	HandleEvent(ctx context.Context, event *Event) error
	// Current returns the newest subscription of a user with the credit balance
	Current(ctx context.Context, userID string) (*Current, error)
}

// SubscriptionRepository defines the persistence of subscriptions
type SubscriptionRepository interface {
	// Upsert inserts or replaces the subscription with the same provider id
	Upsert(ctx context.Context, sub *Subscription) error
	GetByPaddleID(ctx context.Context, paddleSubscriptionID string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	// LatestForUser returns the most recently created subscription of a user
	LatestForUser(ctx context.Context, userID string) (*Subscription, error)
}
