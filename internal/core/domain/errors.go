package domain

import "errors"

var (
	ErrNotFound           = errors.New("domain: not found")
	ErrEmailTaken         = errors.New("domain: email already exists")
	ErrInvalidEmail       = errors.New("domain: invalid email")
	ErrWeakPassword       = errors.New("domain: password must be 6-72 bytes")
	ErrInvalidCredentials = errors.New("domain: invalid credentials")
	ErrInvalidMood        = errors.New("domain: mood word must be 1-30 characters")
	ErrQuotaExceeded      = errors.New("domain: daily generation limit reached")
)
