// Package subscriptions tracks paid plans bought through the payment provider.
package subscriptions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/pkg/validators"
)

// ErrNotFound is returned when no subscription matches
var ErrNotFound = errors.New("subscription not found")

// Subscription statuses
const (
	StatusActive   = "active"
	StatusTrialing = "trialing"
	StatusCanceled = "canceled"
	StatusPastDue  = "past_due"
	StatusPaused   = "paused"
)

// Billing cycles
const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// Event types sent by the payment provider
const (
	EventCreated   = "subscription.created"
	EventUpdated   = "subscription.updated"
	EventCanceled  = "subscription.canceled"
	EventActivated = "subscription.activated"
	EventPastDue   = "subscription.past_due"
	EventPaused    = "subscription.paused"
)

// Subscription entity
type Subscription struct {
	ID                   string  `validate:"required,uuid4"`
	ClerkUserID          string  `validate:"required,max=255"`
	PaddleSubscriptionID string  `validate:"required,max=255"`
	PaddleCustomerID     string  `validate:"max=255"`
	PlanType             string  `validate:"required,planType"`
	Status               string  `validate:"required,max=50"`
	PriceID              string  `validate:"max=255"`
	BillingCycle         string  `validate:"required,billingCycle"`
	Amount               float64 `validate:"gte=0"`
	Currency             string  `validate:"omitempty,len=3"`
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
	TrialStart           *time.Time
	TrialEnd             *time.Time
	CanceledAt           *time.Time
	CancelAt             *time.Time
	Metadata             json.RawMessage
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate for validating Subscription struct
func (s *Subscription) Validate() error {
	return validators.Struct(s)
}

// Event is a webhook delivery of the payment provider.
// RawData keeps the original data object, stored as subscription metadata.
type Event struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt *time.Time      `json:"occurred_at"`
	RawData    json.RawMessage `json:"data"`
	Data       EventData       `json:"-"`
}

// Period is a start and end pair
type Period struct {
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// ScheduledChange is a pending change such as a cancellation at period end
type ScheduledChange struct {
	Action      string     `json:"action"`
	EffectiveAt *time.Time `json:"effective_at"`
}

// CustomData is the checkout passthrough set by the pricing page
type CustomData struct {
	ClerkUserID  string `json:"clerkUserId"`
	PlanType     string `json:"planType"`
	BillingCycle string `json:"billingCycle"`
}

// Item is one subscribed price
type Item struct {
	PriceID string `json:"price_id"`
	Price   struct {
		ID        string `json:"id"`
		UnitPrice struct {
			Amount       string `json:"amount"`
			CurrencyCode string `json:"currency_code"`
		} `json:"unit_price"`
	} `json:"price"`
}

// EventData is the subscription object carried by an Event
type EventData struct {
	ID                   string           `json:"id"`
	Status               string           `json:"status"`
	CustomerID           string           `json:"customer_id"`
	CurrencyCode         string           `json:"currency_code"`
	Items                []Item           `json:"items"`
	CurrentBillingPeriod *Period          `json:"current_billing_period"`
	TrialDates           *Period          `json:"trial_dates"`
	ScheduledChange      *ScheduledChange `json:"scheduled_change"`
	CustomData           *CustomData      `json:"custom_data"`
}

// ParseEvent decodes a webhook body
func ParseEvent(body []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("invalid event payload: %w", err)
	}
	if event.EventType == "" {
		return nil, fmt.Errorf("invalid event payload: missing event_type")
	}
	if len(event.RawData) > 0 && string(event.RawData) != "null" {
		if err := json.Unmarshal(event.RawData, &event.Data); err != nil {
			return nil, fmt.Errorf("invalid event data: %w", err)
		}
	}
	return &event, nil
}

// ClerkUserID returns the user the checkout was started for, if any
func (d *EventData) ClerkUserID() string {
	if d.CustomData == nil {
		return ""
	}
	return d.CustomData.ClerkUserID
}

// PlanType returns the purchased plan, defaulting to starter
func (d *EventData) PlanType() string {
	if d.CustomData != nil && credits.IsKnownPlan(d.CustomData.PlanType) {
		return d.CustomData.PlanType
	}
	return credits.PlanStarter
}

// BillingCycle returns the purchased cycle, defaulting to monthly
func (d *EventData) BillingCycle() string {
	if d.CustomData != nil && d.CustomData.BillingCycle == CycleYearly {
		return CycleYearly
	}
	return CycleMonthly
}

// PriceID returns the price of the first item
func (d *EventData) PriceID() string {
	if len(d.Items) == 0 {
		return ""
	}
	return d.Items[0].PriceID
}

// Amount returns the unit price of the first item in major currency units.
// The provider sends amounts as strings of minor units.
func (d *EventData) Amount() float64 {
	if len(d.Items) == 0 {
		return 0
	}
	minor, err := strconv.ParseFloat(d.Items[0].Price.UnitPrice.Amount, 64)
	if err != nil {
		return 0
	}
	return minor / 100
}

// ApplyPeriods copies billing and trial dates of d onto s
func (d *EventData) ApplyPeriods(s *Subscription) {
	if d.CurrentBillingPeriod != nil {
		s.CurrentPeriodStart = d.CurrentBillingPeriod.StartsAt
		s.CurrentPeriodEnd = d.CurrentBillingPeriod.EndsAt
	}
	if d.TrialDates != nil {
		s.TrialStart = d.TrialDates.StartsAt
		s.TrialEnd = d.TrialDates.EndsAt
	}
}

// Current is the caller's subscription view
type Current struct {
	Subscription *Subscription
	Balance      *credits.Balance
}
