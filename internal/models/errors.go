package models

import (
	"errors"
	"fmt"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrLoadNotFound       = errors.New("models: load not found")
	ErrTruckNotFound      = errors.New("models: truck not found")
	ErrAlertNotFound      = errors.New("models: backhaul alert not found")
	ErrInvalidTransition  = errors.New("models: invalid status transition")
	ErrNotOwner           = errors.New("models: resource belongs to another user")
	ErrInvalidKeycode     = errors.New("models: invalid keycode")
	ErrSessionExpired     = errors.New("models: session expired")
	ErrStorageDisabled    = errors.New("models: object storage is not configured")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
