package models

import "time"

// SubscriptionType represents which capability a subscription grants
type SubscriptionType string

const (
	SubscriptionTypeArtist SubscriptionType = "artist"
	SubscriptionTypeHost   SubscriptionType = "host"
)

// BillingCycle represents how often a subscription is billed
type BillingCycle string

const (
	BillingCycleWeekly  BillingCycle = "weekly"
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// SubscriptionPlan represents a purchasable plan
type SubscriptionPlan struct {
	ID            string           `db:"id" json:"id"`
	Name          string           `db:"name" json:"name"`
	Type          SubscriptionType `db:"type" json:"type"`
	Price         float64          `db:"price" json:"price"`
	SetupFee      *float64         `db:"setup_fee" json:"setup_fee,omitempty"`
	BillingCycle  BillingCycle     `db:"billing_cycle" json:"billing_cycle"`
	DurationWeeks int              `db:"duration_weeks" json:"duration_weeks"`
	Description   *string          `db:"description" json:"description,omitempty"`
	Features      StringArray      `db:"features" json:"features,omitempty"`
	IsActive      bool             `db:"is_active" json:"is_active"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}

// UserSubscription represents the subscription attached to a user
type UserSubscription struct {
	ID           string           `db:"subscription_id" json:"id"`
	Type         SubscriptionType `db:"subscription_type" json:"type"`
	Active       bool             `db:"subscription_active" json:"active"`
	ExpiresAt    time.Time        `db:"subscription_expires_at" json:"expires_at"`
	Price        float64          `db:"subscription_price" json:"price"`
	BillingCycle BillingCycle     `db:"subscription_billing_cycle" json:"billing_cycle"`
	SetupFee     *float64         `db:"subscription_setup_fee" json:"setup_fee,omitempty"`
}

// SubscribeRequest represents a request to subscribe to a plan
type SubscribeRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}
