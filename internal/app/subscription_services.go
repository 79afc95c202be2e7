package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/pkg/logger"

	"github.com/google/uuid"
)

// subscriptionService implements the SubscriptionService interface
type subscriptionService struct {
	subscriptionRepo subscriptions.SubscriptionRepository
	creditService    credits.CreditService
	logger           logger.Logger
	now              func() time.Time
}

// NewSubscriptionService creates a new instance of SubscriptionService
func NewSubscriptionService(subscriptionRepo subscriptions.SubscriptionRepository, creditService credits.CreditService, logger logger.Logger) (subscriptions.SubscriptionService, error) {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		creditService:    creditService,
		logger:           logger,
		now:              time.Now,
	}, nil
}

// HandleEvent dispatches on the event type. Returned errors are storage failures
// the provider should retry.
func (s *subscriptionService) HandleEvent(ctx context.Context, event *subscriptions.Event) error {
	s.logger.Info("payment event received", "event_type", event.EventType, "subscription_id", event.Data.ID)

	switch event.EventType {
	case subscriptions.EventCreated:
		return s.handleCreated(ctx, event)
	case subscriptions.EventUpdated:
		return s.handleUpdated(ctx, event)
	case subscriptions.EventCanceled:
		return s.handleCanceled(ctx, event)
	case subscriptions.EventActivated:
		return s.setStatus(ctx, event, subscriptions.StatusActive)
	case subscriptions.EventPastDue:
		return s.setStatus(ctx, event, subscriptions.StatusPastDue)
	case subscriptions.EventPaused:
		return s.setStatus(ctx, event, subscriptions.StatusPaused)
	default:
		s.logger.Info("unhandled payment event", "event_type", event.EventType)
		return nil
	}
}

func (s *subscriptionService) handleCreated(ctx context.Context, event *subscriptions.Event) error {
	data := &event.Data
	userID := data.ClerkUserID()
	if userID == "" {
		s.logger.Warn("subscription created without user id, ignoring", "subscription_id", data.ID)
		return nil
	}

	now := s.now().UTC()
	plan := data.PlanType()
	sub := &subscriptions.Subscription{
		ID:                   uuid.NewString(),
		ClerkUserID:          userID,
		PaddleSubscriptionID: data.ID,
		PaddleCustomerID:     data.CustomerID,
		PlanType:             plan,
		Status:               statusOr(data.Status, subscriptions.StatusActive),
		PriceID:              data.PriceID(),
		BillingCycle:         data.BillingCycle(),
		Amount:               data.Amount(),
		Currency:             data.CurrencyCode,
		Metadata:             event.RawData,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	data.ApplyPeriods(sub)

	if err := s.subscriptionRepo.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("failed to store subscription: %w", err)
	}

	reason := fmt.Sprintf("Subscription created: %s plan", plan)
	if _, err := s.creditService.ApplyPlan(ctx, userID, plan, reason); err != nil {
		return fmt.Errorf("failed to apply plan credits: %w", err)
	}

	s.logger.Info("subscription created", "user_id", userID, "plan", plan, "credits", credits.Allowance(plan))
	return nil
}

func (s *subscriptionService) handleUpdated(ctx context.Context, event *subscriptions.Event) error {
	sub, err := s.lookup(ctx, event)
	if err != nil || sub == nil {
		return err
	}

	data := &event.Data
	if data.Status != "" {
		sub.Status = data.Status
	}
	data.ApplyPeriods(sub)
	if len(data.Items) > 0 {
		sub.Amount = data.Amount()
		sub.PriceID = data.PriceID()
	}
	sub.Metadata = event.RawData
	sub.UpdatedAt = s.now().UTC()

	if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

// handleCanceled reverts the user to the free plan. A missing custom user id falls back
// to the owner of the stored subscription.
func (s *subscriptionService) handleCanceled(ctx context.Context, event *subscriptions.Event) error {
	sub, err := s.lookup(ctx, event)
	if err != nil {
		return err
	}

	userID := event.Data.ClerkUserID()
	if sub != nil {
		now := s.now().UTC()
		sub.Status = subscriptions.StatusCanceled
		sub.CanceledAt = &now
		if sc := event.Data.ScheduledChange; sc != nil {
			sub.CancelAt = sc.EffectiveAt
		}
		sub.Metadata = event.RawData
		sub.UpdatedAt = now
		if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
			return fmt.Errorf("failed to cancel subscription: %w", err)
		}
		if userID == "" {
			userID = sub.ClerkUserID
		}
	}

	if userID == "" {
		s.logger.Warn("cancellation without a known user, credits unchanged", "subscription_id", event.Data.ID)
		return nil
	}

	if _, err := s.creditService.ApplyPlan(ctx, userID, credits.PlanFree, "Subscription canceled: reverted to free plan"); err != nil {
		return fmt.Errorf("failed to revert plan credits: %w", err)
	}
	return nil
}

func (s *subscriptionService) setStatus(ctx context.Context, event *subscriptions.Event, status string) error {
	sub, err := s.lookup(ctx, event)
	if err != nil || sub == nil {
		return err
	}

	sub.Status = status
	sub.Metadata = event.RawData
	sub.UpdatedAt = s.now().UTC()
	if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
		return fmt.Errorf("failed to update subscription status: %w", err)
	}
	return nil
}

// lookup returns nil without error for subscriptions we never saw created
func (s *subscriptionService) lookup(ctx context.Context, event *subscriptions.Event) (*subscriptions.Subscription, error) {
	sub, err := s.subscriptionRepo.GetByPaddleID(ctx, event.Data.ID)
	if err != nil {
		if errors.Is(err, subscriptions.ErrNotFound) {
			s.logger.Warn("event for unknown subscription", "event_type", event.EventType, "subscription_id", event.Data.ID)
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) Current(ctx context.Context, userID string) (*subscriptions.Current, error) {
	balance, err := s.creditService.Check(ctx, userID)
	if err != nil {
		return nil, err
	}

	current := &subscriptions.Current{Balance: balance}
	sub, err := s.subscriptionRepo.LatestForUser(ctx, userID)
	switch {
	case err == nil:
		current.Subscription = sub
	case errors.Is(err, subscriptions.ErrNotFound):
	default:
		return nil, err
	}
	return current, nil
}

func statusOr(status, fallback string) string {
	if status == "" {
		return fallback
	}
	return status
}
