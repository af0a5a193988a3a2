package domain

import (
	"strings"
	"time"
)

// Password length bounds in bytes; bcrypt ignores anything past 72.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// User is a registered journal owner.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail trims and lower-cases an address and rejects obviously
// malformed input.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n") {
		return "", ErrInvalidEmail
	}
	return email, nil
}
