package credits

import (
	"errors"
	"time"

	"github.com/genno-io/genno/internal/pkg/validators"
)

// Plan types
const (
	PlanFree    = "free"
	PlanStarter = "starter"
	PlanTeam    = "team"
)

// Transaction types
const (
	TransactionDeduct = "deduct"
	TransactionReset  = "reset"
	TransactionGrant  = "grant"
)

// Default deduction values
const (
	DefaultDeductAmount = 1
	DefaultDeductReason = "Blog creation"
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

var (
	// ErrInsufficientCredits is returned when a deduction exceeds the balance
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrNotFound is returned when a user has no credit row
	ErrNotFound = errors.New("credits not found")
)

var allowances = map[string]int{
	PlanFree:    3,
	PlanStarter: 100,
	PlanTeam:    500,
}

// Plans lists the plan types from smallest to largest allowance
var Plans = []string{PlanFree, PlanStarter, PlanTeam}

// Allowance returns the monthly credits of a plan. Unknown plans get the free allowance.
func Allowance(plan string) int {
	if n, ok := allowances[plan]; ok {
		return n
	}
	return allowances[PlanFree]
}

// IsKnownPlan reports whether plan is one of Plans
func IsKnownPlan(plan string) bool {
	_, ok := allowances[plan]
	return ok
}

// UserCredits entity
type UserCredits struct {
	ClerkUserID      string    `validate:"required,max=255"`
	Credits          int       `validate:"min=0"`
	PlanType         string    `validate:"required,planType"`
	TotalCreditsUsed int       `validate:"min=0"`
	LastCreditReset  time.Time `validate:"required"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUserCredits returns the row a new user starts with
func NewUserCredits(userID string, now time.Time) *UserCredits {
	return &UserCredits{
		ClerkUserID:     userID,
		Credits:         Allowance(PlanFree),
		PlanType:        PlanFree,
		LastCreditReset: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate for validating UserCredits struct
func (u *UserCredits) Validate() error {
	return validators.Struct(u)
}

// ResetDue reports whether a month has passed since the last reset
func (u *UserCredits) ResetDue(now time.Time) bool {
	return !u.LastCreditReset.AddDate(0, 1, 0).After(now)
}

// Balance is the read model returned by a credit check
type Balance struct {
	Credits          int
	PlanType         string
	TotalCreditsUsed int
	HasCredits       bool
}

// Balance reports the current balance of u
func (u *UserCredits) Balance() *Balance {
	return &Balance{
		Credits:          u.Credits,
		PlanType:         u.PlanType,
		TotalCreditsUsed: u.TotalCreditsUsed,
		HasCredits:       u.Credits > 0,
	}
}

// DefaultBalance is what a user without a credit row sees
func DefaultBalance() *Balance {
	return &Balance{
		Credits:    Allowance(PlanFree),
		PlanType:   PlanFree,
		HasCredits: true,
	}
}

// Transaction records one balance change
type Transaction struct {
	ID           string `validate:"required,uuid4"`
	ClerkUserID  string `validate:"required"`
	Type         string `validate:"required,oneof=deduct reset grant"`
	Amount       int
	BalanceAfter int     `validate:"min=0"`
	Reason       string  `validate:"max=255"`
	BlogID       *string `validate:"omitempty,max=255"`
	CreatedAt    time.Time
}

// Validate for validating Transaction struct
func (t *Transaction) Validate() error {
	return validators.Struct(t)
}

// DeductRequest describes a deduction
type DeductRequest struct {
	UserID string `validate:"required"`
	Amount int    `validate:"min=1"`
	Reason string `validate:"max=255"`
	BlogID *string
}

// NewDeductRequest fills the defaults of a deduction
func NewDeductRequest(userID string, amount int, reason string, blogID *string) *DeductRequest {
	if amount == 0 {
		amount = DefaultDeductAmount
	}
	if reason == "" {
		reason = DefaultDeductReason
	}
	return &DeductRequest{UserID: userID, Amount: amount, Reason: reason, BlogID: blogID}
}

// Validate for validating DeductRequest struct
func (r *DeductRequest) Validate() error {
	return validators.Struct(r)
}
