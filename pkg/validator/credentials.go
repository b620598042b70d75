package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrEmptyEmail indicates the email is empty
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail indicates the email is not a plausible address
	ErrInvalidEmail = errors.New("email address is not valid")

	// ErrEmptyPassword indicates the password is empty
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordTooShort indicates the password is below the minimum length
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrPasswordTooLong indicates the password exceeds bcrypt's input limit
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

// emailRegex matches a pragmatic subset of valid addresses
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// MaxPasswordLength matches bcrypt's 72-byte input limit
const MaxPasswordLength = 72

// CredentialsValidator handles email and password validation
type CredentialsValidator struct{}

// NewCredentialsValidator creates a new credentials validator instance
func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{}
}

// ValidateEmail validates an email address.
// Returns the sanitized (trimmed, lowercased) address and error if invalid.
func (v *CredentialsValidator) ValidateEmail(email string) (string, error) {
	sanitized := strings.ToLower(strings.TrimSpace(email))
	if sanitized == "" {
		return "", ErrEmptyEmail
	}

	if !emailRegex.MatchString(sanitized) {
		return "", ErrInvalidEmail
	}

	return sanitized, nil
}

// ValidatePassword validates a password against length limits
func (v *CredentialsValidator) ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
