package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// User is a registered account. PasswordHash is a bcrypt hash; the
// plaintext password never leaves the auth service.
type User struct {
	ID           string
	Name         string
	Email        Email
	PasswordHash string
	CreatedAt    time.Time
}

type Email string

// NewEmail trims and validates an email address.
func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("email is required")
	}
	if len(trimmed) > 254 {
		return "", fmt.Errorf("email must be at most 254 characters")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", fmt.Errorf("invalid email address")
	}
	return Email(strings.ToLower(trimmed)), nil
}

func (e Email) String() string {
	return string(e)
}

// NewName validates a display name.
func NewName(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 2 {
		return "", fmt.Errorf("name must be at least 2 characters")
	}
	return trimmed, nil
}

// ValidatePassword checks the plaintext password shape before hashing.
func ValidatePassword(value string) error {
	if len(value) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}
