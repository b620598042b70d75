package services

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tattoospace/station-booking-backend/internal/database"
	"github.com/tattoospace/station-booking-backend/internal/models"
	"github.com/tattoospace/station-booking-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidAdminCredentials is returned on a failed admin login
var ErrInvalidAdminCredentials = fmt.Errorf("invalid email or password")

// ErrAdminNotFound is returned when an admin id does not resolve
var ErrAdminNotFound = fmt.Errorf("admin not found")

// ErrNotSuperAdmin is returned when account management is attempted by
// a non-super admin
var ErrNotSuperAdmin = fmt.Errorf("only super admins can manage admin accounts")

// AdminService handles admin account management and login
type AdminService struct {
	adminRepo  *database.AdminRepository
	activity   *CustomizationService
	bcryptCost int
	logger     *logrus.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	adminRepo *database.AdminRepository,
	activity *CustomizationService,
	bcryptCost int,
	logger *logrus.Logger,
) *AdminService {
	return &AdminService{
		adminRepo:  adminRepo,
		activity:   activity,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Login verifies admin credentials. Successful logins are recorded in
// the activity log with parsed device info.
func (s *AdminService) Login(email, password, userAgent string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidAdminCredentials
		}
		return nil, fmt.Errorf("error loading admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("email", email).Warn("Admin login failed")
		return nil, ErrInvalidAdminCredentials
	}

	device := utils.ParseUserAgent(userAgent)
	details := fmt.Sprintf("From %s on %s (%s)", device.Browser, device.OS, device.DeviceType)
	s.activity.LogActivity(admin, "Logged in", &details)

	return admin, nil
}

// Logout records the logout in the activity log
func (s *AdminService) Logout(admin *models.Admin) {
	s.activity.LogActivity(admin, "Logged out", nil)
}

// GetByID returns a single admin account
func (s *AdminService) GetByID(adminID string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("error loading admin: %w", err)
	}
	return admin, nil
}

// List returns all admin accounts
func (s *AdminService) List() ([]models.Admin, error) {
	admins, err := s.adminRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("error loading admins: %w", err)
	}
	return admins, nil
}

// Add creates a new admin account. Super admins only.
func (s *AdminService) Add(actor *models.Admin, req *models.CreateAdminRequest) (*models.Admin, error) {
	if actor.Role != models.AdminRoleSuper {
		return nil, ErrNotSuperAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	admin := &models.Admin{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Avatar:       req.Avatar,
		PasswordHash: string(hash),
	}

	if err := s.adminRepo.Create(admin); err != nil {
		return nil, fmt.Errorf("error creating admin: %w", err)
	}

	details := fmt.Sprintf("Added %s (%s) as %s", admin.Name, admin.Email, admin.Role)
	s.activity.LogActivity(actor, "Added new admin", &details)

	return admin, nil
}

// Remove deletes an admin account. Super admins only.
func (s *AdminService) Remove(actor *models.Admin, adminID string) error {
	if actor.Role != models.AdminRoleSuper {
		return ErrNotSuperAdmin
	}

	removed, err := s.GetByID(adminID)
	if err != nil {
		return err
	}

	if err := s.adminRepo.Delete(adminID); err != nil {
		return fmt.Errorf("error deleting admin: %w", err)
	}

	details := fmt.Sprintf("Removed %s (%s)", removed.Name, removed.Email)
	s.activity.LogActivity(actor, "Removed admin", &details)

	return nil
}
