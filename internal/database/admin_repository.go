package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// AdminRepository handles database operations for admin accounts
type AdminRepository struct {
	db DB
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db DB) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = `id, name, email, role, avatar, password_hash, created_at, updated_at`

// Create inserts a new admin account
func (r *AdminRepository) Create(admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, name, email, role, avatar, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		admin.ID, admin.Name, admin.Email, admin.Role, admin.Avatar, admin.PasswordHash,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// GetByID retrieves an admin by ID
func (r *AdminRepository) GetByID(adminID string) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	return r.scanAdmin(r.db.QueryRow(query, adminID))
}

// GetByEmail retrieves an admin by email
func (r *AdminRepository) GetByEmail(email string) (*models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`
	return r.scanAdmin(r.db.QueryRow(query, email))
}

// GetAll retrieves all admin accounts
func (r *AdminRepository) GetAll() ([]models.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY created_at`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []models.Admin{}
	for rows.Next() {
		admin, err := r.scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, *admin)
	}

	return admins, rows.Err()
}

// Delete removes an admin account
func (r *AdminRepository) Delete(adminID string) error {
	result, err := r.db.Exec(`DELETE FROM admins WHERE id = $1`, adminID)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
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

// scanAdmin scans a single admin row
func (r *AdminRepository) scanAdmin(row rowScanner) (*models.Admin, error) {
	var admin models.Admin

	err := row.Scan(
		&admin.ID, &admin.Name, &admin.Email, &admin.Role,
		&admin.Avatar, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}
