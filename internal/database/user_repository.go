package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// UserRepository handles database operations for the users table
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, name, email, password_hash, avatar, bio, phone,
	website, instagram, portfolio, is_host, is_artist,
	subscription_id, subscription_type, subscription_active,
	subscription_expires_at, subscription_price,
	subscription_billing_cycle, subscription_setup_fee,
	created_at, updated_at`

// Create inserts a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, avatar)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Avatar,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(userID string) (*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(query, userID))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(query, email))
}

// UpdateProfile updates a user's editable profile fields
func (r *UserRepository) UpdateProfile(user *models.User) error {
	query := `
		UPDATE users
		SET name = $2, avatar = $3, bio = $4, phone = $5,
			website = $6, instagram = $7, portfolio = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		user.ID, user.Name, user.Avatar, user.Bio, user.Phone,
		user.Website, user.Instagram, user.Portfolio,
	).Scan(&user.UpdatedAt)

	return err
}

// SetSubscription attaches a subscription to a user and sets the
// matching capability flag
func (r *UserRepository) SetSubscription(userID string, sub *models.UserSubscription) error {
	query := `
		UPDATE users
		SET subscription_id = $2, subscription_type = $3, subscription_active = $4,
			subscription_expires_at = $5, subscription_price = $6,
			subscription_billing_cycle = $7, subscription_setup_fee = $8,
			is_artist = CASE WHEN $3 = 'artist' THEN TRUE ELSE is_artist END,
			is_host = CASE WHEN $3 = 'host' THEN TRUE ELSE is_host END,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(
		query,
		userID, sub.ID, sub.Type, sub.Active, sub.ExpiresAt,
		sub.Price, sub.BillingCycle, sub.SetupFee,
	)
	if err != nil {
		return fmt.Errorf("failed to set subscription: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ClearSubscription removes a user's subscription and drops the
// capability flag it granted
func (r *UserRepository) ClearSubscription(userID string, subType models.SubscriptionType) error {
	query := `
		UPDATE users
		SET subscription_id = NULL, subscription_type = NULL,
			subscription_active = NULL, subscription_expires_at = NULL,
			subscription_price = NULL, subscription_billing_cycle = NULL,
			subscription_setup_fee = NULL,
			is_artist = CASE WHEN $2 = 'artist' THEN FALSE ELSE is_artist END,
			is_host = CASE WHEN $2 = 'host' THEN FALSE ELSE is_host END,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, userID, subType)
	if err != nil {
		return fmt.Errorf("failed to clear subscription: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetFavorites returns the space ids a user has favorited
func (r *UserRepository) GetFavorites(userID string) ([]string, error) {
	rows, err := r.db.Query(
		`SELECT space_id FROM user_favorites WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []string{}
	for rows.Next() {
		var spaceID string
		if err := rows.Scan(&spaceID); err != nil {
			return nil, err
		}
		favorites = append(favorites, spaceID)
	}

	return favorites, rows.Err()
}

// ToggleFavorite adds the space to the user's favorites, or removes it
// if already present. Returns true when the space ends up favorited.
func (r *UserRepository) ToggleFavorite(userID, spaceID string) (bool, error) {
	result, err := r.db.Exec(
		`DELETE FROM user_favorites WHERE user_id = $1 AND space_id = $2`,
		userID, spaceID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}

	_, err = r.db.Exec(
		`INSERT INTO user_favorites (user_id, space_id) VALUES ($1, $2)`,
		userID, spaceID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return true, nil
}

// scanUser scans a single user row
func (r *UserRepository) scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var subID, subType, subCycle sql.NullString
	var subActive sql.NullBool
	var subExpires sql.NullTime
	var subPrice, subSetupFee sql.NullFloat64

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Avatar, &user.Bio, &user.Phone,
		&user.Website, &user.Instagram, &user.Portfolio,
		&user.IsHost, &user.IsArtist,
		&subID, &subType, &subActive, &subExpires,
		&subPrice, &subCycle, &subSetupFee,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if subID.Valid {
		sub := &models.UserSubscription{
			ID:           subID.String,
			Type:         models.SubscriptionType(subType.String),
			Active:       subActive.Bool,
			ExpiresAt:    subExpires.Time,
			Price:        subPrice.Float64,
			BillingCycle: models.BillingCycle(subCycle.String),
		}
		if subSetupFee.Valid {
			fee := subSetupFee.Float64
			sub.SetupFee = &fee
		}
		user.Subscription = sub
	}

	return &user, nil
}
