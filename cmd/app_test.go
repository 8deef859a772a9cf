package main

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"haulcentral/internal/models"
	"haulcentral/internal/services"
	"haulcentral/utils"
)

type sessionStore struct {
	services.UserStore
	sessions map[string]models.Session
}

func (s *sessionStore) GetSessionByToken(_ context.Context, token string) (models.Session, error) {
	session, ok := s.sessions[token]
	if !ok {
		return models.Session{}, models.ErrSessionExpired
	}
	return session, nil
}

func newTestApp(t *testing.T) *application {
	t.Helper()
	tokens, err := utils.NewManager("test-secret")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	discard := log.New(io.Discard, "", 0)
	store := &sessionStore{sessions: map[string]models.Session{
		"live-refresh": {
			UserID:       "u1",
			Category:     models.CategoryCarrier,
			RefreshToken: "live-refresh",
			ExpiresAt:    time.Now().Add(time.Hour),
		},
		"stale-refresh": {
			UserID:       "u1",
			Category:     models.CategoryCarrier,
			RefreshToken: "stale-refresh",
			ExpiresAt:    time.Now().Add(-time.Hour),
		},
	}}
	return &application{
		errorLog: discard,
		infoLog:  discard,
		tokens:   tokens,
		userService: &services.UserService{
			UserRepo:     store,
			TokenManager: tokens,
			AccessTTL:    time.Minute,
			RefreshTTL:   time.Hour,
		},
		boardHub: NewBoardHub(discard),
	}
}

func accessToken(t *testing.T, app *application, userID, category string, ttl time.Duration) string {
	t.Helper()
	token, err := app.tokens.NewAccessToken(userID, category, false, ttl)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	return token
}
