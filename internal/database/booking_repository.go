package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, space_id, user_id, host_id, start_date, end_date,
	total_price, status, created_at, updated_at`

// Create inserts a new booking
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, space_id, user_id, host_id,
			start_date, end_date, total_price, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		RETURNING created_at, updated_at
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		booking.ID, booking.SpaceID, booking.UserID, booking.HostID,
		booking.StartDate, booking.EndDate, booking.TotalPrice, booking.Status,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.db.QueryRow(query, bookingID))
}

// GetByUserID retrieves all bookings made by a user
func (r *BookingRepository) GetByUserID(userID string) ([]models.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetBySpaceID retrieves all bookings for a space
func (r *BookingRepository) GetBySpaceID(spaceID string) ([]models.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE space_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByHostID retrieves all bookings against a host's spaces
func (r *BookingRepository) GetByHostID(hostID string) ([]models.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE host_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetActiveOverlapping retrieves pending or confirmed bookings for a
// space whose time range intersects [startDate, endDate)
func (r *BookingRepository) GetActiveOverlapping(spaceID string, startDate, endDate time.Time) ([]models.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE space_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_date < $3
		  AND end_date > $2
		ORDER BY start_date
	`

	rows, err := r.db.Query(query, spaceID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus sets the status of a booking
func (r *BookingRepository) UpdateStatus(bookingID string, status models.BookingStatus) error {
	result, err := r.db.Exec(
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
		bookingID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
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

// scanBooking scans a single booking row
func (r *BookingRepository) scanBooking(row rowScanner) (*models.Booking, error) {
	var booking models.Booking

	err := row.Scan(
		&booking.ID, &booking.SpaceID, &booking.UserID, &booking.HostID,
		&booking.StartDate, &booking.EndDate, &booking.TotalPrice, &booking.Status,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// scanBookings scans multiple booking rows
func (r *BookingRepository) scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}
