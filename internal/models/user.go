package models

import (
	"time"
)

// User roles used in JWT claims
const (
	RoleUser   = "user"
	RoleArtist = "artist"
	RoleHost   = "host"
)

// User represents a registered app user
type User struct {
	ID           string      `db:"id" json:"id"`
	Name         string      `db:"name" json:"name"`
	Email        string      `db:"email" json:"email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Avatar       *string     `db:"avatar" json:"avatar,omitempty"`
	Bio          *string     `db:"bio" json:"bio,omitempty"`
	Phone        *string     `db:"phone" json:"phone,omitempty"`
	Website      *string     `db:"website" json:"website,omitempty"`
	Instagram    *string     `db:"instagram" json:"instagram,omitempty"`
	Portfolio    StringArray `db:"portfolio" json:"portfolio,omitempty"`
	IsHost       bool        `db:"is_host" json:"is_host"`
	IsArtist     bool        `db:"is_artist" json:"is_artist"`

	Subscription *UserSubscription `json:"subscription,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Roles returns the role list encoded into the user's tokens
func (u *User) Roles() []string {
	roles := []string{RoleUser}
	if u.IsArtist {
		roles = append(roles, RoleArtist)
	}
	if u.IsHost {
		roles = append(roles, RoleHost)
	}
	return roles
}

// HasActiveSubscription reports whether the user carries an unexpired
// subscription of the given type
func (u *User) HasActiveSubscription(subType SubscriptionType) bool {
	sub := u.Subscription
	return sub != nil && sub.Type == subType && sub.Active && sub.ExpiresAt.After(time.Now())
}

// RegisterRequest represents a new user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a profile edit. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	Name      *string  `json:"name"`
	Avatar    *string  `json:"avatar"`
	Bio       *string  `json:"bio"`
	Phone     *string  `json:"phone"`
	Website   *string  `json:"website"`
	Instagram *string  `json:"instagram"`
	Portfolio []string `json:"portfolio"`
}
