package models

import (
	"fmt"
	"math"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
)

// bookingTransitions is the allowed status transition table.
// completed, cancelled and rejected are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRejected},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError is returned when a booking status change
// violates the transition table
type InvalidTransitionError struct {
	BookingID string
	From      BookingStatus
	To        BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("booking %s cannot move from %s to %s", e.BookingID, e.From, e.To)
}

// BookingConflictError is returned when a requested time range overlaps
// an existing active booking for the same space
type BookingConflictError struct {
	SpaceID   string
	StartDate time.Time
	EndDate   time.Time
}

func (e *BookingConflictError) Error() string {
	return fmt.Sprintf("space %s is already booked between %s and %s",
		e.SpaceID, e.StartDate.Format(time.RFC3339), e.EndDate.Format(time.RFC3339))
}

// Booking represents a time-bounded reservation of a space by a user
type Booking struct {
	ID         string        `db:"id" json:"id"`
	SpaceID    string        `db:"space_id" json:"space_id"`
	UserID     string        `db:"user_id" json:"user_id"`
	HostID     string        `db:"host_id" json:"host_id"`
	StartDate  time.Time     `db:"start_date" json:"start_date"`
	EndDate    time.Time     `db:"end_date" json:"end_date"`
	TotalPrice float64       `db:"total_price" json:"total_price"`
	Status     BookingStatus `db:"status" json:"status"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at" json:"updated_at"`
}

// IsTerminal reports whether the booking is in a terminal status
func (b *Booking) IsTerminal() bool {
	return len(bookingTransitions[b.Status]) == 0
}

// Overlaps reports whether two half-open time intervals intersect
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CreateBookingRequest represents a request to book a space
type CreateBookingRequest struct {
	SpaceID   string    `json:"space_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// Validate validates the booking request. An end time at or before the
// start is treated as an overnight session and wrapped to the next day.
func (r *CreateBookingRequest) Validate() error {
	if r.SpaceID == "" {
		return fmt.Errorf("space_id is required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("start_date and end_date are required")
	}
	if !r.EndDate.After(r.StartDate) {
		r.EndDate = r.EndDate.AddDate(0, 0, 1)
	}
	return nil
}

// TotalPriceFor derives the booking total from the space price and the
// booked duration, rounded up to the next whole price unit.
func (r *CreateBookingRequest) TotalPriceFor(space *Space) float64 {
	duration := r.EndDate.Sub(r.StartDate)

	var units float64
	switch space.PriceUnit {
	case PriceUnitDay:
		units = math.Ceil(duration.Hours() / 24)
	default:
		units = math.Ceil(duration.Hours())
	}
	if units < 1 {
		units = 1
	}
	return space.Price * units
}
