//go:build unit
// +build unit

package credits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowance(t *testing.T) {
	assert.Equal(t, 3, Allowance(PlanFree))
	assert.Equal(t, 100, Allowance(PlanStarter))
	assert.Equal(t, 500, Allowance(PlanTeam))
	assert.Equal(t, 3, Allowance("enterprise"))
	assert.Equal(t, 3, Allowance(""))
}

func TestIsKnownPlan(t *testing.T) {
	for _, p := range Plans {
		assert.True(t, IsKnownPlan(p), p)
	}
	assert.False(t, IsKnownPlan("gold"))
}

func TestNewUserCredits(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := NewUserCredits("user_123", now)

	assert.Equal(t, "user_123", uc.ClerkUserID)
	assert.Equal(t, 3, uc.Credits)
	assert.Equal(t, PlanFree, uc.PlanType)
	assert.Equal(t, 0, uc.TotalCreditsUsed)
	assert.Equal(t, now, uc.LastCreditReset)
	require.NoError(t, uc.Validate())
}

func TestUserCredits_Validate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		credits *UserCredits
		wantErr bool
	}{
		{"valid", &UserCredits{ClerkUserID: "u", Credits: 10, PlanType: PlanStarter, LastCreditReset: now}, false},
		{"missing user", &UserCredits{Credits: 10, PlanType: PlanStarter, LastCreditReset: now}, true},
		{"negative credits", &UserCredits{ClerkUserID: "u", Credits: -1, PlanType: PlanFree, LastCreditReset: now}, true},
		{"unknown plan", &UserCredits{ClerkUserID: "u", Credits: 1, PlanType: "gold", LastCreditReset: now}, true},
		{"missing reset", &UserCredits{ClerkUserID: "u", Credits: 1, PlanType: PlanFree}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.credits.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserCredits_ResetDue(t *testing.T) {
	last := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	uc := &UserCredits{LastCreditReset: last}

	assert.False(t, uc.ResetDue(last.AddDate(0, 0, 30)))
	assert.True(t, uc.ResetDue(last.AddDate(0, 1, 0)))
	assert.True(t, uc.ResetDue(last.AddDate(0, 2, 0)))
}

func TestUserCredits_Balance(t *testing.T) {
	uc := &UserCredits{Credits: 0, PlanType: PlanStarter, TotalCreditsUsed: 100}
	b := uc.Balance()

	assert.Equal(t, 0, b.Credits)
	assert.Equal(t, PlanStarter, b.PlanType)
	assert.Equal(t, 100, b.TotalCreditsUsed)
	assert.False(t, b.HasCredits)
}

func TestDefaultBalance(t *testing.T) {
	b := DefaultBalance()
	assert.Equal(t, &Balance{Credits: 3, PlanType: PlanFree, TotalCreditsUsed: 0, HasCredits: true}, b)
}

func TestNewDeductRequest(t *testing.T) {
	req := NewDeductRequest("user_1", 0, "", nil)
	assert.Equal(t, DefaultDeductAmount, req.Amount)
	assert.Equal(t, DefaultDeductReason, req.Reason)
	require.NoError(t, req.Validate())

	blogID := "blog-1"
	req = NewDeductRequest("user_1", 2, "Video conversion", &blogID)
	assert.Equal(t, 2, req.Amount)
	assert.Equal(t, "Video conversion", req.Reason)
	assert.Equal(t, &blogID, req.BlogID)

	assert.Error(t, NewDeductRequest("user_1", -1, "", nil).Validate())
	assert.Error(t, NewDeductRequest("", 1, "", nil).Validate())
}
