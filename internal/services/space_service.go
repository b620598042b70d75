package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tattoospace/station-booking-backend/internal/database"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// ErrSpaceNotFound is returned when a space id does not resolve
var ErrSpaceNotFound = fmt.Errorf("space not found")

// ErrNotSpaceOwner is returned when a host operates on a space they do
// not own
var ErrNotSpaceOwner = fmt.Errorf("space does not belong to this host")

// SpaceService handles business logic for the listing catalog
type SpaceService struct {
	spaceRepo *database.SpaceRepository
	logger    *logrus.Logger
}

// NewSpaceService creates a new space service
func NewSpaceService(spaceRepo *database.SpaceRepository, logger *logrus.Logger) *SpaceService {
	return &SpaceService{
		spaceRepo: spaceRepo,
		logger:    logger,
	}
}

// Search returns the spaces satisfying the filter
func (s *SpaceService) Search(filter models.SpaceFilter) ([]models.Space, error) {
	startTime := time.Now()

	spaces, err := s.spaceRepo.GetAll()
	if err != nil {
		s.logger.WithError(err).Error("Error loading spaces")
		return nil, fmt.Errorf("error loading spaces: %w", err)
	}

	results := spaces
	if !filter.IsEmpty() {
		results = ApplyFilter(spaces, filter)
	}

	s.logger.WithFields(logrus.Fields{
		"total":       len(spaces),
		"matched":     len(results),
		"response_ms": time.Since(startTime).Milliseconds(),
	}).Info("Space search completed")

	return results, nil
}

// GetByID returns a single space
func (s *SpaceService) GetByID(spaceID string) (*models.Space, error) {
	space, err := s.spaceRepo.GetByID(spaceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("error loading space: %w", err)
	}
	return space, nil
}

// GetByHost returns all spaces listed by a host
func (s *SpaceService) GetByHost(hostID string) ([]models.Space, error) {
	spaces, err := s.spaceRepo.GetByHostID(hostID)
	if err != nil {
		return nil, fmt.Errorf("error loading host spaces: %w", err)
	}
	return spaces, nil
}

// GetFeatured returns the spaces in the admin-curated featured set
func (s *SpaceService) GetFeatured(featuredIDs []string) ([]models.Space, error) {
	spaces, err := s.spaceRepo.GetByIDs(featuredIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading featured spaces: %w", err)
	}
	return spaces, nil
}

// Create lists a new space for the given host
func (s *SpaceService) Create(host *models.User, req *models.CreateSpaceRequest) (*models.Space, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	avatar := ""
	if host.Avatar != nil {
		avatar = *host.Avatar
	}

	space := &models.Space{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		PriceUnit:    req.PriceUnit,
		City:         req.City,
		Neighborhood: req.Neighborhood,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Images:       req.Images,
		Capacity:     req.Capacity,
		Amenities:    req.Amenities,
		Categories:   req.Categories,
		Host: models.HostSummary{
			ID:     host.ID,
			Name:   host.Name,
			Avatar: avatar,
		},
		AvailableDates: req.AvailableDates,
	}

	if err := s.spaceRepo.Create(space); err != nil {
		s.logger.WithError(err).Error("Error creating space")
		return nil, fmt.Errorf("error creating space: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"space_id": space.ID,
		"host_id":  host.ID,
	}).Info("Space created")

	return space, nil
}

// Update edits a host-owned space. Nil request fields are left
// unchanged.
func (s *SpaceService) Update(hostID, spaceID string, req *models.UpdateSpaceRequest) (*models.Space, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	space, err := s.GetByID(spaceID)
	if err != nil {
		return nil, err
	}
	if space.Host.ID != hostID {
		return nil, ErrNotSpaceOwner
	}

	if req.Title != nil {
		space.Title = *req.Title
	}
	if req.Description != nil {
		space.Description = *req.Description
	}
	if req.Price != nil {
		space.Price = *req.Price
	}
	if req.PriceUnit != nil {
		space.PriceUnit = *req.PriceUnit
	}
	if req.City != nil {
		space.City = *req.City
	}
	if req.Neighborhood != nil {
		space.Neighborhood = *req.Neighborhood
	}
	if req.Address != nil {
		space.Address = req.Address
	}
	if req.Images != nil {
		space.Images = req.Images
	}
	if req.Capacity != nil {
		space.Capacity = *req.Capacity
	}
	if req.Amenities != nil {
		space.Amenities = req.Amenities
	}
	if req.Categories != nil {
		space.Categories = req.Categories
	}
	if req.AvailableDates != nil {
		space.AvailableDates = req.AvailableDates
	}

	if err := s.spaceRepo.Update(space); err != nil {
		s.logger.WithError(err).Error("Error updating space")
		return nil, fmt.Errorf("error updating space: %w", err)
	}

	return space, nil
}

// Delete removes a host-owned space
func (s *SpaceService) Delete(hostID, spaceID string) error {
	space, err := s.GetByID(spaceID)
	if err != nil {
		return err
	}
	if space.Host.ID != hostID {
		return ErrNotSpaceOwner
	}

	if err := s.spaceRepo.Delete(spaceID); err != nil {
		s.logger.WithError(err).Error("Error deleting space")
		return fmt.Errorf("error deleting space: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"space_id": spaceID,
		"host_id":  hostID,
	}).Info("Space deleted")

	return nil
}
