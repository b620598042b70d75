package database

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// CustomizationRepository handles database operations for the app
// customization record, the featured space set and the activity log
type CustomizationRepository struct {
	db DB
}

// NewCustomizationRepository creates a new CustomizationRepository
func NewCustomizationRepository(db DB) *CustomizationRepository {
	return &CustomizationRepository{db: db}
}

// GetCustomization retrieves the app customization record. The table
// holds a single row.
func (r *CustomizationRepository) GetCustomization() (*models.AppCustomization, error) {
	query := `
		SELECT app_name, logo_url, color_overrides, updated_at
		FROM app_customization
		WHERE id = 1
	`

	var custom models.AppCustomization
	var overrides []byte

	err := r.db.QueryRow(query).Scan(
		&custom.AppName, &custom.LogoURL, &overrides, &custom.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	custom.ColorScheme = models.ColorScheme{}
	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &custom.ColorScheme); err != nil {
			return nil, fmt.Errorf("failed to decode color overrides: %w", err)
		}
	}

	featured, err := r.GetFeaturedSpaceIDs()
	if err != nil {
		return nil, err
	}
	custom.FeaturedSpaceIDs = featured

	return &custom, nil
}

// UpdateAppInfo updates the app name and logo URL
func (r *CustomizationRepository) UpdateAppInfo(appName, logoURL string) error {
	_, err := r.db.Exec(
		`UPDATE app_customization SET app_name = $1, logo_url = $2, updated_at = NOW() WHERE id = 1`,
		appName, logoURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update app info: %w", err)
	}
	return nil
}

// SetColorOverrides replaces the stored color-scheme override map
func (r *CustomizationRepository) SetColorOverrides(overrides models.ColorScheme) error {
	data, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("failed to encode color overrides: %w", err)
	}

	_, err = r.db.Exec(
		`UPDATE app_customization SET color_overrides = $1, updated_at = NOW() WHERE id = 1`,
		data,
	)
	if err != nil {
		return fmt.Errorf("failed to update color overrides: %w", err)
	}
	return nil
}

// GetFeaturedSpaceIDs returns the curated featured space id set
func (r *CustomizationRepository) GetFeaturedSpaceIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT space_id FROM featured_spaces ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// AddFeaturedSpace adds a space to the featured set. Adding an id
// already present is a no-op.
func (r *CustomizationRepository) AddFeaturedSpace(spaceID string) error {
	_, err := r.db.Exec(
		`INSERT INTO featured_spaces (space_id) VALUES ($1) ON CONFLICT (space_id) DO NOTHING`,
		spaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to add featured space: %w", err)
	}
	return nil
}

// RemoveFeaturedSpace removes a space from the featured set. Removing
// a non-member id is a no-op.
func (r *CustomizationRepository) RemoveFeaturedSpace(spaceID string) error {
	_, err := r.db.Exec(`DELETE FROM featured_spaces WHERE space_id = $1`, spaceID)
	if err != nil {
		return fmt.Errorf("failed to remove featured space: %w", err)
	}
	return nil
}

// AppendActivity appends an entry to the activity log
func (r *CustomizationRepository) AppendActivity(entry *models.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_log (id, admin_id, admin_name, action, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING timestamp
	`

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		entry.ID, entry.AdminID, entry.AdminName, entry.Action, entry.Details,
	).Scan(&entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}

	return nil
}

// GetActivityLog returns the most recent activity entries
func (r *CustomizationRepository) GetActivityLog(limit int) ([]models.ActivityLogEntry, error) {
	query := `
		SELECT id, admin_id, admin_name, action, details, timestamp
		FROM activity_log
		ORDER BY timestamp DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.ActivityLogEntry{}
	for rows.Next() {
		var entry models.ActivityLogEntry
		err := rows.Scan(
			&entry.ID, &entry.AdminID, &entry.AdminName,
			&entry.Action, &entry.Details, &entry.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
