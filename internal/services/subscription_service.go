package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tattoospace/station-booking-backend/internal/database"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// ErrPlanNotFound is returned when a plan id does not resolve
var ErrPlanNotFound = fmt.Errorf("subscription plan not found")

// ErrNoSubscription is returned when cancelling or upgrading without
// an existing subscription
var ErrNoSubscription = fmt.Errorf("user has no subscription")

// SubscriptionService attaches subscriptions to users and keeps the
// capability flags in step with them
type SubscriptionService struct {
	planRepo *database.PlanRepository
	userRepo *database.UserRepository
	logger   *logrus.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	planRepo *database.PlanRepository,
	userRepo *database.UserRepository,
	logger *logrus.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		planRepo: planRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListPlans returns the active plans, optionally restricted to a type
func (s *SubscriptionService) ListPlans(planType models.SubscriptionType) ([]models.SubscriptionPlan, error) {
	var (
		plans []models.SubscriptionPlan
		err   error
	)
	if planType != "" {
		plans, err = s.planRepo.GetActiveByType(planType)
	} else {
		plans, err = s.planRepo.GetActive()
	}
	if err != nil {
		return nil, fmt.Errorf("error loading plans: %w", err)
	}
	return plans, nil
}

// Subscribe attaches the plan's subscription to the user. Expiry is
// the plan duration in weeks from now; the matching capability flag
// (is_artist or is_host) is set alongside.
func (s *SubscriptionService) Subscribe(userID, planID string) (*models.UserSubscription, error) {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("error loading plan: %w", err)
	}

	sub := &models.UserSubscription{
		ID:           plan.ID,
		Type:         plan.Type,
		Active:       true,
		ExpiresAt:    time.Now().AddDate(0, 0, plan.DurationWeeks*7),
		Price:        plan.Price,
		BillingCycle: plan.BillingCycle,
		SetupFee:     plan.SetupFee,
	}

	if err := s.userRepo.SetSubscription(userID, sub); err != nil {
		s.logger.WithError(err).Error("Error attaching subscription")
		return nil, fmt.Errorf("error attaching subscription: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"plan_id":    planID,
		"type":       plan.Type,
		"expires_at": sub.ExpiresAt,
	}).Info("Subscription attached")

	return sub, nil
}

// Upgrade replaces the user's subscription with the given plan's
func (s *SubscriptionService) Upgrade(userID, planID string) (*models.UserSubscription, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if user.Subscription == nil {
		return nil, ErrNoSubscription
	}

	return s.Subscribe(userID, planID)
}

// Cancel clears the user's subscription and the capability flag it
// granted, so gating and subscription state stay consistent.
func (s *SubscriptionService) Cancel(userID string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("error loading user: %w", err)
	}
	if user.Subscription == nil {
		return ErrNoSubscription
	}

	if err := s.userRepo.ClearSubscription(userID, user.Subscription.Type); err != nil {
		s.logger.WithError(err).Error("Error clearing subscription")
		return fmt.Errorf("error clearing subscription: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"type":    user.Subscription.Type,
	}).Info("Subscription cancelled")

	return nil
}
