package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"haulcentral/internal/models"
)

const adminGrantAudience = "admin-panel"

var ErrNotAdminGrant = errors.New("token is not an admin grant")

type Manager struct {
	signingKey string
}

func NewManager(signingKey string) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}

	return &Manager{signingKey: signingKey}, nil
}

// NewAccessToken signs the session identity into an HS256 token.
func (m *Manager) NewAccessToken(userID, category string, isAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := models.Claims{
		UserID:   userID,
		Category: category,
		IsAdmin:  isAdmin,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.signingKey))
}

func (m *Manager) Parse(accessToken string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, m.keyFunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Audience == adminGrantAudience {
		return nil, errors.New("admin grant used as access token")
	}
	return claims, nil
}

// NewAdminGrant issues the short-lived token that unlocks the admin panel.
func (m *Manager) NewAdminGrant(userID string, ttl time.Duration) (string, time.Time, error) {
	expires := time.Now().Add(ttl)
	claims := models.Claims{
		UserID:  userID,
		IsAdmin: true,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			Audience:  adminGrantAudience,
			ExpiresAt: expires.Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.signingKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ParseAdminGrant returns the user the grant was issued to.
func (m *Manager) ParseAdminGrant(grant string) (string, error) {
	claims := &models.Claims{}
	if _, err := jwt.ParseWithClaims(grant, claims, m.keyFunc); err != nil {
		return "", err
	}
	if !claims.VerifyAudience(adminGrantAudience, true) {
		return "", ErrNotAdminGrant
	}
	return claims.UserID, nil
}

func (m *Manager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(m.signingKey), nil
}

func (m *Manager) NewRefreshToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
