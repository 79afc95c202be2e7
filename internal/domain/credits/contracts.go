package credits

import (
	"context"
	"time"
)

// CreditService defines the metering operations used by handlers and other services.
type CreditService interface {
	// Check returns the balance of a user; users without a row get the free defaults.
	Check(ctx context.Context, userID string) (*Balance, error)

	// Deduct removes credits atomically. It returns ErrInsufficientCredits when the balance is too small.
	Deduct(ctx context.Context, req *DeductRequest) (*UserCredits, error)

	// Grant adds credits back, for example after a failed conversion.
	Grant(ctx context.Context, userID string, amount int, reason string) (*UserCredits, error)

	// ApplyPlan switches the user to plan and resets the balance to its allowance.
	ApplyPlan(ctx context.Context, userID, plan, reason string) (*UserCredits, error)

	// ResetExpired gives every user whose last reset is a month old their allowance back.
	ResetExpired(ctx context.Context, now time.Time) (int, error)

	// History lists recent transactions, newest first.
	History(ctx context.Context, userID string, limit int) ([]*Transaction, error)
}

// CreditRepository defines the persistence of credit rows and their transactions.
// Every balance-changing method writes the row and its transaction in one database transaction.
type CreditRepository interface {
	GetByUserID(ctx context.Context, userID string) (*UserCredits, error)
	Deduct(ctx context.Context, req *DeductRequest) (*UserCredits, error)
	Grant(ctx context.Context, userID string, amount int, reason string) (*UserCredits, error)
	SetPlan(ctx context.Context, userID, plan string, credits int, reason string, now time.Time) (*UserCredits, error)
	ListResetDue(ctx context.Context, before time.Time) ([]*UserCredits, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]*Transaction, error)
}
