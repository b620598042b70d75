package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// SpaceRepository handles database operations for the spaces table
type SpaceRepository struct {
	db DB
}

// NewSpaceRepository creates a new SpaceRepository
func NewSpaceRepository(db DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

const spaceColumns = `
	id, title, description, price, price_unit,
	city, neighborhood, address, latitude, longitude,
	images, capacity, amenities, categories,
	host_id, host_name, host_avatar, host_rating,
	rating, review_count, featured, available_dates,
	created_at, updated_at`

// Create inserts a new space
func (r *SpaceRepository) Create(space *models.Space) error {
	query := `
		INSERT INTO spaces (
			id, title, description, price, price_unit,
			city, neighborhood, address, latitude, longitude,
			images, capacity, amenities, categories,
			host_id, host_name, host_avatar, host_rating,
			rating, review_count, featured, available_dates
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)
		RETURNING created_at, updated_at
	`

	if space.ID == "" {
		space.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		space.ID, space.Title, space.Description, space.Price, space.PriceUnit,
		space.City, space.Neighborhood, space.Address, space.Latitude, space.Longitude,
		space.Images, space.Capacity, space.Amenities, space.Categories,
		space.Host.ID, space.Host.Name, space.Host.Avatar, space.Host.Rating,
		space.Rating, space.ReviewCount, space.Featured, space.AvailableDates,
	).Scan(&space.CreatedAt, &space.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create space: %w", err)
	}

	return nil
}

// GetByID retrieves a space by ID
func (r *SpaceRepository) GetByID(spaceID string) (*models.Space, error) {
	query := `SELECT` + spaceColumns + ` FROM spaces WHERE id = $1`
	return r.scanSpace(r.db.QueryRow(query, spaceID))
}

// GetAll retrieves all spaces, newest first
func (r *SpaceRepository) GetAll() ([]models.Space, error) {
	query := `SELECT` + spaceColumns + ` FROM spaces ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanSpaces(rows)
}

// GetByHostID retrieves all spaces listed by a host
func (r *SpaceRepository) GetByHostID(hostID string) ([]models.Space, error) {
	query := `SELECT` + spaceColumns + ` FROM spaces WHERE host_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanSpaces(rows)
}

// GetByIDs retrieves spaces matching the given ids, preserving no
// particular order
func (r *SpaceRepository) GetByIDs(spaceIDs []string) ([]models.Space, error) {
	if len(spaceIDs) == 0 {
		return []models.Space{}, nil
	}

	query := `SELECT` + spaceColumns + ` FROM spaces WHERE id = ANY($1)`

	rows, err := r.db.Query(query, models.StringArray(spaceIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanSpaces(rows)
}

// Update updates a space
func (r *SpaceRepository) Update(space *models.Space) error {
	query := `
		UPDATE spaces
		SET title = $2, description = $3, price = $4, price_unit = $5,
			city = $6, neighborhood = $7, address = $8,
			images = $9, capacity = $10, amenities = $11, categories = $12,
			featured = $13, available_dates = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		space.ID, space.Title, space.Description, space.Price, space.PriceUnit,
		space.City, space.Neighborhood, space.Address,
		space.Images, space.Capacity, space.Amenities, space.Categories,
		space.Featured, space.AvailableDates,
	).Scan(&space.UpdatedAt)

	return err
}

// SetFeatured flips the featured flag on a space
func (r *SpaceRepository) SetFeatured(spaceID string, featured bool) error {
	result, err := r.db.Exec(
		`UPDATE spaces SET featured = $2, updated_at = NOW() WHERE id = $1`,
		spaceID, featured,
	)
	if err != nil {
		return fmt.Errorf("failed to update featured flag: %w", err)
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

// Delete removes a space
func (r *SpaceRepository) Delete(spaceID string) error {
	result, err := r.db.Exec(`DELETE FROM spaces WHERE id = $1`, spaceID)
	if err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
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

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSpace scans a single space row
func (r *SpaceRepository) scanSpace(row rowScanner) (*models.Space, error) {
	var space models.Space

	err := row.Scan(
		&space.ID, &space.Title, &space.Description, &space.Price, &space.PriceUnit,
		&space.City, &space.Neighborhood, &space.Address, &space.Latitude, &space.Longitude,
		&space.Images, &space.Capacity, &space.Amenities, &space.Categories,
		&space.Host.ID, &space.Host.Name, &space.Host.Avatar, &space.Host.Rating,
		&space.Rating, &space.ReviewCount, &space.Featured, &space.AvailableDates,
		&space.CreatedAt, &space.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &space, nil
}

// scanSpaces scans multiple space rows
func (r *SpaceRepository) scanSpaces(rows *sql.Rows) ([]models.Space, error) {
	spaces := []models.Space{}

	for rows.Next() {
		space, err := r.scanSpace(rows)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, *space)
	}

	return spaces, rows.Err()
}
