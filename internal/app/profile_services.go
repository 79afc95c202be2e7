package app

import (
	"context"
	"fmt"
	"time"

	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/pkg/logger"
)

// profileService implements the ProfileService interface
type profileService struct {
	profileRepo profiles.ProfileRepository
	logger      logger.Logger
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(profileRepo profiles.ProfileRepository, logger logger.Logger) (profiles.ProfileService, error) {
	return &profileService{
		profileRepo: profileRepo,
		logger:      logger,
	}, nil
}

func (s *profileService) HandleEvent(ctx context.Context, event *profiles.UserEvent) (bool, error) {
	switch event.Type {
	case profiles.EventUserCreated, profiles.EventUserUpdated:
		profile, err := event.Data.ToProfile(time.Now().UTC())
		if err != nil {
			return true, err
		}
		if err := s.profileRepo.Upsert(ctx, profile); err != nil {
			return true, fmt.Errorf("failed to store profile: %w", err)
		}
		s.logger.Info("profile synced", "event_type", event.Type, "user_id", profile.ClerkUserID)
		return true, nil

	case profiles.EventUserDeleted:
		if event.Data.ID == "" {
			return true, fmt.Errorf("user.deleted without user id")
		}
		if err := s.profileRepo.DeleteByUserID(ctx, event.Data.ID); err != nil {
			return true, fmt.Errorf("failed to delete profile: %w", err)
		}
		s.logger.Info("profile deleted", "user_id", event.Data.ID)
		return true, nil

	default:
		s.logger.Info("unhandled user event", "event_type", event.Type)
		return false, nil
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*profiles.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}
