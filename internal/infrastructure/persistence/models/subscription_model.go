package models

import (
	"encoding/json"
	"time"

	"github.com/genno-io/genno/internal/domain/subscriptions"
)

// SubscriptionModel is the GORM database model for subscriptions
type SubscriptionModel struct {
	ID                   string  `gorm:"primaryKey;type:uuid"`
	ClerkUserID          string  `gorm:"not null;index;type:varchar(255)"`
	PaddleSubscriptionID string  `gorm:"not null;uniqueIndex;type:varchar(255)"`
	PaddleCustomerID     string  `gorm:"type:varchar(255)"`
	PlanType             string  `gorm:"not null;type:varchar(20)"`
	Status               string  `gorm:"not null;type:varchar(50)"`
	PriceID              string  `gorm:"type:varchar(255)"`
	BillingCycle         string  `gorm:"not null;type:varchar(20)"`
	Amount               float64 `gorm:"not null"`
	Currency             string  `gorm:"type:varchar(3)"`
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
	TrialStart           *time.Time
	TrialEnd             *time.Time
	CanceledAt           *time.Time
	CancelAt             *time.Time
	Metadata             string    `gorm:"type:text"`
	CreatedAt            time.Time `gorm:"not null;index"`
	UpdatedAt            time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts GORM model to domain entity
func (m *SubscriptionModel) ToDomain() *subscriptions.Subscription {
	s := &subscriptions.Subscription{
		ID:                   m.ID,
		ClerkUserID:          m.ClerkUserID,
		PaddleSubscriptionID: m.PaddleSubscriptionID,
		PaddleCustomerID:     m.PaddleCustomerID,
		PlanType:             m.PlanType,
		Status:               m.Status,
		PriceID:              m.PriceID,
		BillingCycle:         m.BillingCycle,
		Amount:               m.Amount,
		Currency:             m.Currency,
		CurrentPeriodStart:   m.CurrentPeriodStart,
		CurrentPeriodEnd:     m.CurrentPeriodEnd,
		TrialStart:           m.TrialStart,
		TrialEnd:             m.TrialEnd,
		CanceledAt:           m.CanceledAt,
		CancelAt:             m.CancelAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.Metadata != "" {
		s.Metadata = json.RawMessage(m.Metadata)
	}
	return s
}

// FromDomain converts domain entity to GORM model
func (m *SubscriptionModel) FromDomain(s *subscriptions.Subscription) {
	m.ID = s.ID
	m.ClerkUserID = s.ClerkUserID
	m.PaddleSubscriptionID = s.PaddleSubscriptionID
	m.PaddleCustomerID = s.PaddleCustomerID
	m.PlanType = s.PlanType
	m.Status = s.Status
	m.PriceID = s.PriceID
	m.BillingCycle = s.BillingCycle
	m.Amount = s.Amount
	m.Currency = s.Currency
	m.CurrentPeriodStart = s.CurrentPeriodStart
	m.CurrentPeriodEnd = s.CurrentPeriodEnd
	m.TrialStart = s.TrialStart
	m.TrialEnd = s.TrialEnd
	m.CanceledAt = s.CanceledAt
	m.CancelAt = s.CancelAt
	m.Metadata = string(s.Metadata)
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}
