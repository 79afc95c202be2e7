package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/infrastructure/persistence/models"
	"github.com/genno-io/genno/internal/pkg/logger"
	"github.com/google/uuid"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormCreditRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCreditRepository creates a new GORM-based CreditRepository implementation
func NewGormCreditRepository(db *gorm.DB, logger logger.Logger) (credits.CreditRepository, error) {
	return &gormCreditRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCreditRepository) GetByUserID(ctx context.Context, userID string) (*credits.UserCredits, error) {
	var model models.UserCreditsModel
	if err := r.db.WithContext(ctx).Where("clerk_user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", credits.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to fetch credits: %w", err)
	}
	return model.ToDomain(), nil
}

// Deduct creates the free row when missing, then decrements only while the balance covers amount.
func (r *gormCreditRepository) Deduct(ctx context.Context, req *credits.DeductRequest) (*credits.UserCredits, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	var updated *credits.UserCredits
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if err := ensureCreditRow(tx, req.UserID, now); err != nil {
			return err
		}

		res := tx.Model(&models.UserCreditsModel{}).
			Where("clerk_user_id = ? AND credits >= ?", req.UserID, req.Amount).
			Updates(map[string]interface{}{
				"credits":            gorm.Expr("credits - ?", req.Amount),
				"total_credits_used": gorm.Expr("total_credits_used + ?", req.Amount),
				"updated_at":         now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to deduct credits: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return credits.ErrInsufficientCredits
		}

		row, err := loadCreditRow(tx, req.UserID)
		if err != nil {
			return err
		}

		if err := insertTransaction(tx, &credits.Transaction{
			ID:           uuid.NewString(),
			ClerkUserID:  req.UserID,
			Type:         credits.TransactionDeduct,
			Amount:       -req.Amount,
			BalanceAfter: row.Credits,
			Reason:       req.Reason,
			BlogID:       req.BlogID,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		updated = row.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("credits deducted", "user_id", req.UserID, "amount", req.Amount, "balance", updated.Credits)
	return updated, nil
}

func (r *gormCreditRepository) Grant(ctx context.Context, userID string, amount int, reason string) (*credits.UserCredits, error) {
	if amount < 1 {
		return nil, fmt.Errorf("validation error: grant amount must be positive, got %d", amount)
	}

	var updated *credits.UserCredits
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if err := ensureCreditRow(tx, userID, now); err != nil {
			return err
		}

		res := tx.Model(&models.UserCreditsModel{}).
			Where("clerk_user_id = ?", userID).
			Updates(map[string]interface{}{
				"credits":            gorm.Expr("credits + ?", amount),
				"total_credits_used": gorm.Expr("CASE WHEN total_credits_used >= ? THEN total_credits_used - ? ELSE 0 END", amount, amount),
				"updated_at":         now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to grant credits: %w", res.Error)
		}

		row, err := loadCreditRow(tx, userID)
		if err != nil {
			return err
		}

		if err := insertTransaction(tx, &credits.Transaction{
			ID:           uuid.NewString(),
			ClerkUserID:  userID,
			Type:         credits.TransactionGrant,
			Amount:       amount,
			BalanceAfter: row.Credits,
			Reason:       reason,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		updated = row.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("credits granted", "user_id", userID, "amount", amount, "balance", updated.Credits)
	return updated, nil
}

// SetPlan upserts the row with the plan and balance and logs a reset transaction.
func (r *gormCreditRepository) SetPlan(ctx context.Context, userID, plan string, amount int, reason string, now time.Time) (*credits.UserCredits, error) {
	now = now.UTC()
	row := &credits.UserCredits{
		ClerkUserID:     userID,
		Credits:         amount,
		PlanType:        plan,
		LastCreditReset: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := row.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	var updated *credits.UserCredits
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := &models.UserCreditsModel{}
		model.FromDomain(row)

		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "clerk_user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"plan_type":         plan,
				"credits":           amount,
				"last_credit_reset": now,
				"updated_at":        now,
			}),
		}).Create(model).Error
		if err != nil {
			return fmt.Errorf("failed to set plan: %w", err)
		}

		if err := insertTransaction(tx, &credits.Transaction{
			ID:           uuid.NewString(),
			ClerkUserID:  userID,
			Type:         credits.TransactionReset,
			Amount:       amount,
			BalanceAfter: amount,
			Reason:       reason,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		stored, err := loadCreditRow(tx, userID)
		if err != nil {
			return err
		}
		updated = stored.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("plan applied", "user_id", userID, "plan", plan, "credits", amount)
	return updated, nil
}

func (r *gormCreditRepository) ListResetDue(ctx context.Context, before time.Time) ([]*credits.UserCredits, error) {
	var modelList []*models.UserCreditsModel
	if err := r.db.WithContext(ctx).
		Where("last_credit_reset <= ?", before.UTC()).
		Order("clerk_user_id asc").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch credits due for reset: %w", err)
	}

	domainList := make([]*credits.UserCredits, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormCreditRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]*credits.Transaction, error) {
	if limit <= 0 || limit > credits.MaxHistoryLimit {
		limit = credits.DefaultHistoryLimit
	}

	var modelList []*models.CreditTransactionModel
	if err := r.db.WithContext(ctx).
		Where("clerk_user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch credit transactions: %w", err)
	}

	domainList := make([]*credits.Transaction, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func ensureCreditRow(tx *gorm.DB, userID string, now time.Time) error {
	model := &models.UserCreditsModel{}
	model.FromDomain(credits.NewUserCredits(userID, now))

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create credit row: %w", err)
	}
	return nil
}

func loadCreditRow(tx *gorm.DB, userID string) (*models.UserCreditsModel, error) {
	var model models.UserCreditsModel
	if err := tx.Where("clerk_user_id = ?", userID).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to reload credits: %w", err)
	}
	return &model, nil
}

func insertTransaction(tx *gorm.DB, t *credits.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.CreditTransactionModel{}
	model.FromDomain(t)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to record credit transaction: %w", err)
	}
	return nil
}
