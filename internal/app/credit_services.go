package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/pkg/logger"
)

// creditService implements the CreditService interface on top of a CreditRepository
type creditService struct {
	creditRepo credits.CreditRepository
	logger     logger.Logger
}

// NewCreditService creates a new instance of CreditService
func NewCreditService(creditRepo credits.CreditRepository, logger logger.Logger) (credits.CreditService, error) {
	return &creditService{
		creditRepo: creditRepo,
		logger:     logger,
	}, nil
}

// Check never writes; a missing row reads as the free defaults.
func (s *creditService) Check(ctx context.Context, userID string) (*credits.Balance, error) {
	row, err := s.creditRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, credits.ErrNotFound) {
			return credits.DefaultBalance(), nil
		}
		return nil, fmt.Errorf("failed to check credits: %w", err)
	}
	return row.Balance(), nil
}

func (s *creditService) Deduct(ctx context.Context, req *credits.DeductRequest) (*credits.UserCredits, error) {
	row, err := s.creditRepo.Deduct(ctx, req)
	if err != nil {
		if errors.Is(err, credits.ErrInsufficientCredits) {
			s.logger.Warn("insufficient credits", "user_id", req.UserID, "amount", req.Amount)
		}
		return nil, err
	}
	return row, nil
}

func (s *creditService) Grant(ctx context.Context, userID string, amount int, reason string) (*credits.UserCredits, error) {
	return s.creditRepo.Grant(ctx, userID, amount, reason)
}

// ApplyPlan resets the balance to the plan allowance
func (s *creditService) ApplyPlan(ctx context.Context, userID, plan, reason string) (*credits.UserCredits, error) {
	if !credits.IsKnownPlan(plan) {
		s.logger.Warn("unknown plan, applying free allowance", "user_id", userID, "plan", plan)
		plan = credits.PlanFree
	}
	return s.creditRepo.SetPlan(ctx, userID, plan, credits.Allowance(plan), reason, time.Now().UTC())
}

// ResetExpired keeps going after a failed row and reports the first error with the count.
func (s *creditService) ResetExpired(ctx context.Context, now time.Time) (int, error) {
	due, err := s.creditRepo.ListResetDue(ctx, now.AddDate(0, -1, 0))
	if err != nil {
		return 0, err
	}

	var firstErr error
	count := 0
	for _, row := range due {
		if !row.ResetDue(now) {
			continue
		}
		reason := fmt.Sprintf("Monthly reset: %s plan", row.PlanType)
		if _, err := s.creditRepo.SetPlan(ctx, row.ClerkUserID, row.PlanType, credits.Allowance(row.PlanType), reason, now); err != nil {
			s.logger.Error("monthly reset failed", "user_id", row.ClerkUserID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		count++
	}

	s.logger.Info("monthly credit reset finished", "reset", count, "due", len(due))
	return count, firstErr
}

func (s *creditService) History(ctx context.Context, userID string, limit int) ([]*credits.Transaction, error) {
	return s.creditRepo.ListTransactions(ctx, userID, limit)
}
