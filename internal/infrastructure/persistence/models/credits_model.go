package models

import (
	"time"

	"github.com/genno-io/genno/internal/domain/credits"
)

// UserCreditsModel is the GORM database model for credit balances
type UserCreditsModel struct {
	ClerkUserID      string    `gorm:"primaryKey;type:varchar(255)"`
	Credits          int       `gorm:"not null"`
	PlanType         string    `gorm:"not null;type:varchar(20)"`
	TotalCreditsUsed int       `gorm:"not null"`
	LastCreditReset  time.Time `gorm:"not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (UserCreditsModel) TableName() string {
	return "user_credits"
}

// ToDomain converts GORM model to domain entity
func (m *UserCreditsModel) ToDomain() *credits.UserCredits {
	return &credits.UserCredits{
		ClerkUserID:      m.ClerkUserID,
		Credits:          m.Credits,
		PlanType:         m.PlanType,
		TotalCreditsUsed: m.TotalCreditsUsed,
		LastCreditReset:  m.LastCreditReset,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserCreditsModel) FromDomain(u *credits.UserCredits) {
	m.ClerkUserID = u.ClerkUserID
	m.Credits = u.Credits
	m.PlanType = u.PlanType
	m.TotalCreditsUsed = u.TotalCreditsUsed
	m.LastCreditReset = u.LastCreditReset
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}

// CreditTransactionModel is the GORM database model for the credit ledger
type CreditTransactionModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	ClerkUserID     string    `gorm:"not null;index;type:varchar(255)"`
	TransactionType string    `gorm:"not null;type:varchar(20)"`
	Amount          int       `gorm:"not null"`
	BalanceAfter    int       `gorm:"not null"`
	Reason          string    `gorm:"type:varchar(255)"`
	BlogID          *string   `gorm:"type:varchar(255)"`
	CreatedAt       time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (CreditTransactionModel) TableName() string {
	return "credit_transactions"
}

// ToDomain converts GORM model to domain entity
func (m *CreditTransactionModel) ToDomain() *credits.Transaction {
	return &credits.Transaction{
		ID:           m.ID,
		ClerkUserID:  m.ClerkUserID,
		Type:         m.TransactionType,
		Amount:       m.Amount,
		BalanceAfter: m.BalanceAfter,
		Reason:       m.Reason,
		BlogID:       m.BlogID,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *CreditTransactionModel) FromDomain(t *credits.Transaction) {
	m.ID = t.ID
	m.ClerkUserID = t.ClerkUserID
	m.TransactionType = t.Type
	m.Amount = t.Amount
	m.BalanceAfter = t.BalanceAfter
	m.Reason = t.Reason
	m.BlogID = t.BlogID
	m.CreatedAt = t.CreatedAt
}
