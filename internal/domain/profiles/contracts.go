package profiles

import "context"

// ProfileService applies authentication provider events and serves profiles
type ProfileService interface {
	// HandleEvent applies a user event. It reports false for event types it does not handle.
	HandleEvent(ctx context.Context, event *UserEvent) (bool, error)
	// Get returns the profile of a user
	Get(ctx context.Context, userID string) (*Profile, error)
}

// ProfileRepository defines the persistence of profiles
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
