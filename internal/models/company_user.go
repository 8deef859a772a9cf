package models

import (
	"strings"
	"time"
)

type CompanyUser struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"companyId"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName,omitempty"`
	IsAdmin     bool       `json:"isAdmin"`
	Keycode     string     `json:"-"`
	Status      string     `json:"status"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type AddCompanyUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
	Keycode     string `json:"keycode"`
}

func (r *AddCompanyUserRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	r.Keycode = strings.TrimSpace(r.Keycode)
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if !IsKeycode(r.Keycode) {
		return &ValidationError{Field: "keycode", Reason: "must be exactly 4 digits"}
	}
	return nil
}

// IsKeycode reports whether s is a 4-digit access code.
func IsKeycode(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

type VerifyKeycodeRequest struct {
	Keycode string `json:"keycode"`
}

type AdminGrant struct {
	Grant     string    `json:"grant"`
	ExpiresAt time.Time `json:"expiresAt"`
}
