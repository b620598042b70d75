package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tattoospace/station-booking-backend/internal/database"
	"github.com/tattoospace/station-booking-backend/internal/models"
)

// CustomizationService manages the admin-controlled app appearance:
// app name and logo, the color-scheme override map merged over the
// default theme, and the featured space set. Every mutation appends an
// activity-log entry naming the acting admin.
type CustomizationService struct {
	customRepo *database.CustomizationRepository
	spaceRepo  *database.SpaceRepository
	logger     *logrus.Logger
}

// NewCustomizationService creates a new customization service
func NewCustomizationService(
	customRepo *database.CustomizationRepository,
	spaceRepo *database.SpaceRepository,
	logger *logrus.Logger,
) *CustomizationService {
	return &CustomizationService{
		customRepo: customRepo,
		spaceRepo:  spaceRepo,
		logger:     logger,
	}
}

// Get returns the customization record with the effective color scheme
// (defaults merged with stored overrides)
func (s *CustomizationService) Get() (*models.AppCustomization, error) {
	custom, err := s.customRepo.GetCustomization()
	if err != nil {
		return nil, fmt.Errorf("error loading customization: %w", err)
	}

	custom.ColorScheme = models.DefaultColorScheme().Merge(custom.ColorScheme)
	return custom, nil
}

// UpdateAppInfo updates the app name and logo URL
func (s *CustomizationService) UpdateAppInfo(actor *models.Admin, req *models.UpdateCustomizationRequest) error {
	custom, err := s.customRepo.GetCustomization()
	if err != nil {
		return fmt.Errorf("error loading customization: %w", err)
	}

	changed := []string{}
	if req.AppName != nil {
		custom.AppName = *req.AppName
		changed = append(changed, "app_name")
	}
	if req.LogoURL != nil {
		custom.LogoURL = *req.LogoURL
		changed = append(changed, "logo_url")
	}
	if len(changed) == 0 {
		return nil
	}

	if err := s.customRepo.UpdateAppInfo(custom.AppName, custom.LogoURL); err != nil {
		return fmt.Errorf("error updating app info: %w", err)
	}

	details := "Updated: " + strings.Join(changed, ", ")
	s.logActivity(actor, "Updated app customization", &details)
	return nil
}

// UpdateColorScheme merges the given partial scheme over the stored
// overrides
func (s *CustomizationService) UpdateColorScheme(actor *models.Admin, partial models.ColorScheme) error {
	custom, err := s.customRepo.GetCustomization()
	if err != nil {
		return fmt.Errorf("error loading customization: %w", err)
	}

	merged := custom.ColorScheme.Merge(partial)
	if err := s.customRepo.SetColorOverrides(merged); err != nil {
		return fmt.Errorf("error updating color scheme: %w", err)
	}

	keys := make([]string, 0, len(partial))
	for k := range partial {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	details := "Updated colors: " + strings.Join(keys, ", ")
	s.logActivity(actor, "Updated color scheme", &details)
	return nil
}

// ResetColorScheme drops all stored overrides, restoring the default
// theme
func (s *CustomizationService) ResetColorScheme(actor *models.Admin) error {
	if err := s.customRepo.SetColorOverrides(models.ColorScheme{}); err != nil {
		return fmt.Errorf("error resetting color scheme: %w", err)
	}

	s.logActivity(actor, "Reset color scheme", nil)
	return nil
}

// AddFeaturedSpace adds a space to the featured set. The space must
// exist; adding an already-featured space is a no-op.
func (s *CustomizationService) AddFeaturedSpace(actor *models.Admin, spaceID string) error {
	space, err := s.spaceRepo.GetByID(spaceID)
	if err != nil {
		return ErrSpaceNotFound
	}

	if err := s.customRepo.AddFeaturedSpace(spaceID); err != nil {
		return fmt.Errorf("error adding featured space: %w", err)
	}

	details := fmt.Sprintf("Featured %q (%s)", space.Title, spaceID)
	s.logActivity(actor, "Added featured space", &details)
	return nil
}

// RemoveFeaturedSpace removes a space from the featured set. Removing
// a non-member is a no-op.
func (s *CustomizationService) RemoveFeaturedSpace(actor *models.Admin, spaceID string) error {
	if err := s.customRepo.RemoveFeaturedSpace(spaceID); err != nil {
		return fmt.Errorf("error removing featured space: %w", err)
	}

	details := fmt.Sprintf("Unfeatured %s", spaceID)
	s.logActivity(actor, "Removed featured space", &details)
	return nil
}

// GetActivityLog returns the most recent activity entries
func (s *CustomizationService) GetActivityLog(limit int) ([]models.ActivityLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	entries, err := s.customRepo.GetActivityLog(limit)
	if err != nil {
		return nil, fmt.Errorf("error loading activity log: %w", err)
	}
	return entries, nil
}

// LogActivity appends an arbitrary entry to the activity log on behalf
// of other admin flows (login, account management)
func (s *CustomizationService) LogActivity(actor *models.Admin, action string, details *string) {
	s.logActivity(actor, action, details)
}

// logActivity appends the entry, logging but not propagating failures:
// customization mutations should not be rolled back because the audit
// write failed
func (s *CustomizationService) logActivity(actor *models.Admin, action string, details *string) {
	entry := &models.ActivityLogEntry{
		AdminID:   actor.ID,
		AdminName: actor.Name,
		Action:    action,
		Details:   details,
	}

	if err := s.customRepo.AppendActivity(entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"admin_id": actor.ID,
			"action":   action,
		}).Warn("Failed to append activity log entry")
	}
}
