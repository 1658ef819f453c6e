package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFoundOrUnauthorized hides whether a record is missing or owned by another clinic
	ErrNotFoundOrUnauthorized = errors.New("not found or unauthorized")
	ErrNotFound               = errors.New("not found")
	ErrConflict               = errors.New("already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// ValidationError reports a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Scope is the authenticated identity every tenant operation runs under
type Scope struct {
	UserID   uint
	ClinicID uint
}
