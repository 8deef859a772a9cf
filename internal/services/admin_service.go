package services

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"haulcentral/internal/models"
	"haulcentral/utils"
)

const companyUserActive = "active"

type AdminService struct {
	UserRepo      UserStore
	CompanyRepo   CompanyUserStore
	TokenManager  *utils.Manager
	GrantTTL      time.Duration
	BootstrapCode string
}

// Verify checks the 4-digit admin keycode for userID and returns a grant
// for the admin panel. Accounts without a stored keycode use the bootstrap
// code.
func (s *AdminService) Verify(ctx context.Context, userID, keycode string) (models.AdminGrant, error) {
	keycode = strings.TrimSpace(keycode)
	if !models.IsKeycode(keycode) {
		return models.AdminGrant{}, models.ErrInvalidKeycode
	}
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.AdminGrant{}, err
	}

	if user.Keycode != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Keycode), []byte(keycode)); err != nil {
			return models.AdminGrant{}, models.ErrInvalidKeycode
		}
	} else if subtle.ConstantTimeCompare([]byte(keycode), []byte(s.BootstrapCode)) != 1 {
		return models.AdminGrant{}, models.ErrInvalidKeycode
	}

	grant, expires, err := s.TokenManager.NewAdminGrant(user.ID, s.GrantTTL)
	if err != nil {
		return models.AdminGrant{}, err
	}
	return models.AdminGrant{Grant: grant, ExpiresAt: expires}, nil
}

// ChangeKeycode replaces the admin's keycode.
func (s *AdminService) ChangeKeycode(ctx context.Context, userID, keycode string) error {
	if !models.IsKeycode(keycode) {
		return &models.ValidationError{Field: "keycode", Reason: "must be exactly 4 digits"}
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(keycode), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.SetKeycode(ctx, userID, string(hashed))
}

// ListCompanyUsers returns the users the admin added. The admin's own id
// identifies the company.
func (s *AdminService) ListCompanyUsers(ctx context.Context, adminID string) ([]models.CompanyUser, error) {
	users, err := s.CompanyRepo.ListByCompany(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.CompanyUser{}
	}
	return users, nil
}

func (s *AdminService) AddCompanyUser(ctx context.Context, adminID string, req models.AddCompanyUserRequest) (models.CompanyUser, error) {
	if err := req.Validate(); err != nil {
		return models.CompanyUser{}, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Keycode), bcrypt.DefaultCost)
	if err != nil {
		return models.CompanyUser{}, err
	}
	u := models.CompanyUser{
		ID:          uuid.NewString(),
		CompanyID:   adminID,
		Email:       strings.ToLower(req.Email),
		DisplayName: req.DisplayName,
		IsAdmin:     req.IsAdmin,
		Keycode:     string(hashed),
		Status:      companyUserActive,
		CreatedAt:   time.Now().UTC(),
	}
	return s.CompanyRepo.CreateCompanyUser(ctx, u)
}
