package database

import (
	"database/sql"

	"github.com/tattoospace/station-booking-backend/internal/models"
)

// PlanRepository handles database operations for subscription plans
type PlanRepository struct {
	db DB
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db DB) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `
	id, name, type, price, setup_fee, billing_cycle,
	duration_weeks, description, features, is_active,
	created_at, updated_at`

// GetByID retrieves a plan by ID
func (r *PlanRepository) GetByID(planID string) (*models.SubscriptionPlan, error) {
	query := `SELECT` + planColumns + ` FROM subscription_plans WHERE id = $1`
	return r.scanPlan(r.db.QueryRow(query, planID))
}

// GetActive retrieves all active plans
func (r *PlanRepository) GetActive() ([]models.SubscriptionPlan, error) {
	query := `SELECT` + planColumns + ` FROM subscription_plans WHERE is_active = TRUE ORDER BY price`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanPlans(rows)
}

// GetActiveByType retrieves active plans of the given type
func (r *PlanRepository) GetActiveByType(planType models.SubscriptionType) ([]models.SubscriptionPlan, error) {
	query := `SELECT` + planColumns + ` FROM subscription_plans WHERE is_active = TRUE AND type = $1 ORDER BY price`

	rows, err := r.db.Query(query, planType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanPlans(rows)
}

// scanPlan scans a single plan row
func (r *PlanRepository) scanPlan(row rowScanner) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan

	err := row.Scan(
		&plan.ID, &plan.Name, &plan.Type, &plan.Price, &plan.SetupFee,
		&plan.BillingCycle, &plan.DurationWeeks, &plan.Description,
		&plan.Features, &plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

// scanPlans scans multiple plan rows
func (r *PlanRepository) scanPlans(rows *sql.Rows) ([]models.SubscriptionPlan, error) {
	plans := []models.SubscriptionPlan{}

	for rows.Next() {
		plan, err := r.scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}

	return plans, rows.Err()
}
