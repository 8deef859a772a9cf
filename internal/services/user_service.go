package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"haulcentral/internal/models"
	"haulcentral/utils"
)

const minPasswordLength = 6

type UserService struct {
	UserRepo     UserStore
	TokenManager *utils.Manager
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.CompanyName = strings.TrimSpace(req.CompanyName)

	switch {
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		return models.User{}, &models.ValidationError{Field: "email", Reason: "must be a valid email address"}
	case len(req.Password) < minPasswordLength:
		return models.User{}, &models.ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	case !models.ValidCategory(req.Category):
		return models.User{}, &models.ValidationError{Field: "category", Reason: "must be owner-operator, carrier or broker-shipper"}
	case req.Keycode != "" && !models.IsKeycode(req.Keycode):
		return models.User{}, &models.ValidationError{Field: "keycode", Reason: "must be exactly 4 digits"}
	}

	_, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return models.User{}, models.ErrDuplicateEmail
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	trialEnds := now.Add(models.TrialPeriod)
	user := models.User{
		ID:                 uuid.NewString(),
		Email:              req.Email,
		Password:           string(hashedPassword),
		DisplayName:        req.DisplayName,
		Category:           req.Category,
		CompanyName:        req.CompanyName,
		DOTNumber:          strings.TrimSpace(req.DOTNumber),
		MCNumber:           strings.TrimSpace(req.MCNumber),
		TrialEndsAt:        &trialEnds,
		SubscriptionStatus: models.SubscriptionTrial,
		CreatedAt:          now,
	}
	if req.Keycode != "" {
		hashedKeycode, err := bcrypt.GenerateFromPassword([]byte(req.Keycode), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.Keycode = string(hashedKeycode)
		user.IsAdmin = true
	}

	user, err = s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.Tokens, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, models.ErrUserNotFound) {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.Tokens{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	return s.CreateSession(ctx, user)
}

// CreateSession issues a token pair and stores the refresh half.
func (s *UserService) CreateSession(ctx context.Context, user models.User) (models.Tokens, error) {
	accessToken, err := s.TokenManager.NewAccessToken(user.ID, user.Category, user.IsAdmin, s.AccessTTL)
	if err != nil {
		return models.Tokens{}, err
	}
	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}

	session := models.Session{
		UserID:       user.ID,
		Category:     user.Category,
		IsAdmin:      user.IsAdmin,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().UTC().Add(s.RefreshTTL),
	}
	if err := s.UserRepo.SetSession(ctx, user.ID, session); err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh trades a live refresh token for a new access token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.Session, string, error) {
	if refreshToken == "" {
		return models.Session{}, "", models.ErrSessionExpired
	}
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return models.Session{}, "", err
	}
	if !session.ExpiresAt.After(time.Now()) {
		return models.Session{}, "", models.ErrSessionExpired
	}
	accessToken, err := s.TokenManager.NewAccessToken(session.UserID, session.Category, session.IsAdmin, s.AccessTTL)
	if err != nil {
		return models.Session{}, "", err
	}
	return session, accessToken, nil
}

func (s *UserService) LogOut(ctx context.Context, userID string) error {
	return s.UserRepo.ClearSession(ctx, userID)
}

// AuthState reports the signed-in user, or a nil user when userID is empty.
func (s *UserService) AuthState(ctx context.Context, userID string) (models.AuthState, error) {
	if userID == "" {
		return models.AuthState{}, nil
	}
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if errors.Is(err, models.ErrUserNotFound) {
		return models.AuthState{}, nil
	}
	if err != nil {
		return models.AuthState{}, err
	}
	user.Password = ""
	return models.AuthState{User: &user, DashboardPath: DashboardPath(user.Category)}, nil
}

// DashboardPath is where a user of the given category lands after sign in.
func DashboardPath(category string) string {
	if !models.ValidCategory(category) {
		return "/login"
	}
	return "/dashboard/" + category
}

func (s *UserService) RegisterDevice(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return &models.ValidationError{Field: "token", Reason: "is required"}
	}
	return s.UserRepo.SetFCMToken(ctx, userID, token)
}
