package models

import "time"

// AdminRole represents the privilege level of an admin account
type AdminRole string

const (
	AdminRoleSuper     AdminRole = "super"
	AdminRoleAdmin     AdminRole = "admin"
	AdminRoleModerator AdminRole = "moderator"
)

// Admin represents an administrative account
type Admin struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Role         AdminRole `db:"role" json:"role"`
	Avatar       *string   `db:"avatar" json:"avatar,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ActivityLogEntry represents one append-only admin activity record
type ActivityLogEntry struct {
	ID        string    `db:"id" json:"id"`
	AdminID   string    `db:"admin_id" json:"admin_id"`
	AdminName string    `db:"admin_name" json:"admin_name"`
	Action    string    `db:"action" json:"action"`
	Details   *string   `db:"details" json:"details,omitempty"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// ColorScheme maps named UI slots to hex color values. Stored schemes
// are partial; missing slots fall back to the defaults.
type ColorScheme map[string]string

// DefaultColorScheme returns the built-in dark theme
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		"primary":          "#FF5A5F",
		"secondary":        "#00A699",
		"background":       "#121212",
		"card":             "#1E1E1E",
		"text":             "#FFFFFF",
		"headerBackground": "#1E1E1E",
		"headerText":       "#FFFFFF",
		"inputBackground":  "#2C2C2C",
		"inputText":        "#FFFFFF",
		"buttonText":       "#FFFFFF",
		"tabBarActive":     "#FF5A5F",
		"tabBarInactive":   "#888888",
		"tabBarBackground": "#1E1E1E",
		"border":           "#333333",
	}
}

// Merge returns a copy of the scheme with the override values applied
func (c ColorScheme) Merge(override ColorScheme) ColorScheme {
	merged := make(ColorScheme, len(c)+len(override))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// AppCustomization holds the admin-managed appearance settings
type AppCustomization struct {
	AppName          string      `db:"app_name" json:"app_name"`
	LogoURL          string      `db:"logo_url" json:"logo_url"`
	ColorScheme      ColorScheme `json:"color_scheme"`
	FeaturedSpaceIDs StringArray `db:"featured_space_ids" json:"featured_space_ids"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`
}

// AdminLoginRequest represents an admin login attempt
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateAdminRequest represents a request to add an admin account
type CreateAdminRequest struct {
	Name     string    `json:"name" binding:"required"`
	Email    string    `json:"email" binding:"required"`
	Password string    `json:"password" binding:"required"`
	Role     AdminRole `json:"role" binding:"required"`
	Avatar   *string   `json:"avatar"`
}

// UpdateCustomizationRequest updates app name and logo. Nil fields are
// left unchanged.
type UpdateCustomizationRequest struct {
	AppName *string `json:"app_name"`
	LogoURL *string `json:"logo_url"`
}
