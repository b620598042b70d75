package services

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tattoospace/station-booking-backend/internal/database"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// ErrBookingNotFound is returned when a booking id does not resolve
var ErrBookingNotFound = fmt.Errorf("booking not found")

// ErrNotBookingParticipant is returned when a caller acts on a booking
// they are neither the booker nor the host of
var ErrNotBookingParticipant = fmt.Errorf("caller is not a participant of this booking")

// BookingService handles business logic for the booking ledger
type BookingService struct {
	bookingRepo *database.BookingRepository
	spaceRepo   *database.SpaceRepository
	logger      *logrus.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo *database.BookingRepository,
	spaceRepo *database.SpaceRepository,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		spaceRepo:   spaceRepo,
		logger:      logger,
	}
}

// Create books a space for a user. The space must exist, the requested
// range must not overlap an existing pending or confirmed booking for
// the same space, and the total price is derived from the space price.
func (s *BookingService) Create(userID string, req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	space, err := s.spaceRepo.GetByID(req.SpaceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("error loading space: %w", err)
	}

	overlapping, err := s.bookingRepo.GetActiveOverlapping(req.SpaceID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("error checking booking conflicts: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, &models.BookingConflictError{
			SpaceID:   req.SpaceID,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		}
	}

	booking := &models.Booking{
		SpaceID:    space.ID,
		UserID:     userID,
		HostID:     space.Host.ID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalPrice: req.TotalPriceFor(space),
		Status:     models.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		s.logger.WithError(err).Error("Error creating booking")
		return nil, fmt.Errorf("error creating booking: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"space_id":    booking.SpaceID,
		"user_id":     booking.UserID,
		"total_price": booking.TotalPrice,
	}).Info("Booking created")

	return booking, nil
}

// GetByID returns a single booking
func (s *BookingService) GetByID(bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error loading booking: %w", err)
	}
	return booking, nil
}

// GetByUser returns all bookings made by a user
func (s *BookingService) GetByUser(userID string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user bookings: %w", err)
	}
	return bookings, nil
}

// GetBySpace returns all bookings for a space
func (s *BookingService) GetBySpace(spaceID string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.GetBySpaceID(spaceID)
	if err != nil {
		return nil, fmt.Errorf("error loading space bookings: %w", err)
	}
	return bookings, nil
}

// GetByHost returns all bookings against a host's spaces
func (s *BookingService) GetByHost(hostID string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.GetByHostID(hostID)
	if err != nil {
		return nil, fmt.Errorf("error loading host bookings: %w", err)
	}
	return bookings, nil
}

// Cancel moves a booking to cancelled. Allowed for the booker and the
// host, from pending or confirmed.
func (s *BookingService) Cancel(callerID, bookingID string) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingStatusCancelled, func(b *models.Booking) bool {
		return callerID == b.UserID || callerID == b.HostID
	})
}

// Approve moves a pending booking to confirmed. Host only.
func (s *BookingService) Approve(callerID, bookingID string) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingStatusConfirmed, func(b *models.Booking) bool {
		return callerID == b.HostID
	})
}

// Reject moves a pending booking to rejected. Host only.
func (s *BookingService) Reject(callerID, bookingID string) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingStatusRejected, func(b *models.Booking) bool {
		return callerID == b.HostID
	})
}

// Complete moves a confirmed booking to completed. Host only.
func (s *BookingService) Complete(callerID, bookingID string) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingStatusCompleted, func(b *models.Booking) bool {
		return callerID == b.HostID
	})
}

// transition applies a status change after checking the caller is
// permitted and the change is allowed by the transition table
func (s *BookingService) transition(
	bookingID string,
	to models.BookingStatus,
	permitted func(*models.Booking) bool,
) (*models.Booking, error) {
	booking, err := s.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if !permitted(booking) {
		return nil, ErrNotBookingParticipant
	}

	if !models.CanTransition(booking.Status, to) {
		return nil, &models.InvalidTransitionError{
			BookingID: bookingID,
			From:      booking.Status,
			To:        to,
		}
	}

	if err := s.bookingRepo.UpdateStatus(bookingID, to); err != nil {
		s.logger.WithError(err).Error("Error updating booking status")
		return nil, fmt.Errorf("error updating booking status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"from":       booking.Status,
		"to":         to,
	}).Info("Booking status changed")

	booking.Status = to
	return booking, nil
}
