package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"haulcentral/internal/models"
	"haulcentral/utils"
)

func newUserService(t *testing.T, users *stubUsers) *UserService {
	t.Helper()
	tm, err := utils.NewManager("test-secret")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return &UserService{UserRepo: users, TokenManager: tm, AccessTTL: time.Minute, RefreshTTL: time.Hour}
}

func TestSignUpStartsTrial(t *testing.T) {
	users := newStubUsers()
	svc := newUserService(t, users)

	user, err := svc.SignUp(context.Background(), models.SignUpRequest{
		Email:    " Driver@Example.com ",
		Password: "hunter22",
		Category: models.CategoryOwnerOperator,
	})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.Email != "driver@example.com" || user.Password != "" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.SubscriptionStatus != models.SubscriptionTrial || user.TrialEndsAt == nil {
		t.Fatalf("trial not started: %+v", user)
	}
	if days := TrialDaysLeft(user, time.Now()); days != 14 {
		t.Fatalf("expected 14 trial days, got %d", days)
	}
	stored := users.users[user.ID]
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter22")) != nil {
		t.Fatal("password not hashed")
	}
}

func TestSignUpRejectsDuplicateAndInvalid(t *testing.T) {
	users := newStubUsers(models.User{ID: "u1", Email: "taken@example.com"})
	svc := newUserService(t, users)

	_, err := svc.SignUp(context.Background(), models.SignUpRequest{Email: "taken@example.com", Password: "secret1", Category: models.CategoryCarrier})
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email, got %v", err)
	}

	cases := []struct {
		field string
		req   models.SignUpRequest
	}{
		{"email", models.SignUpRequest{Email: "nope", Password: "secret1", Category: models.CategoryCarrier}},
		{"password", models.SignUpRequest{Email: "a@b.c", Password: "123", Category: models.CategoryCarrier}},
		{"category", models.SignUpRequest{Email: "a@b.c", Password: "secret1", Category: "shipper"}},
		{"keycode", models.SignUpRequest{Email: "a@b.c", Password: "secret1", Category: models.CategoryCarrier, Keycode: "12"}},
	}
	for _, tc := range cases {
		_, err := svc.SignUp(context.Background(), tc.req)
		var verr *models.ValidationError
		if !errors.As(err, &verr) || verr.Field != tc.field {
			t.Fatalf("expected %s validation error, got %v", tc.field, err)
		}
	}
}

func TestSignInAndRefresh(t *testing.T) {
	users := newStubUsers()
	svc := newUserService(t, users)
	user, err := svc.SignUp(context.Background(), models.SignUpRequest{Email: "c@example.com", Password: "secret1", Category: models.CategoryCarrier})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, err := svc.SignIn(context.Background(), models.SignInRequest{Email: "c@example.com", Password: "wrong"}); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.SignIn(context.Background(), models.SignInRequest{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}

	tokens, err := svc.SignIn(context.Background(), models.SignInRequest{Email: "C@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	claims, err := svc.TokenManager.Parse(tokens.AccessToken)
	if err != nil || claims.UserID != user.ID || claims.Category != models.CategoryCarrier {
		t.Fatalf("bad access token: %+v %v", claims, err)
	}

	session, access, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	if err != nil || session.UserID != user.ID || access == "" {
		t.Fatalf("Refresh = %+v %q %v", session, access, err)
	}

	if err := svc.LogOut(context.Background(), user.ID); err != nil {
		t.Fatalf("LogOut: %v", err)
	}
	if _, _, err := svc.Refresh(context.Background(), tokens.RefreshToken); !errors.Is(err, models.ErrSessionExpired) {
		t.Fatalf("expected expired session after log out, got %v", err)
	}
}

func TestRefreshRejectsExpiredSession(t *testing.T) {
	users := newStubUsers(models.User{ID: "u1"})
	users.sessions["old"] = models.Session{UserID: "u1", RefreshToken: "old", ExpiresAt: time.Now().Add(-time.Minute)}
	svc := newUserService(t, users)
	if _, _, err := svc.Refresh(context.Background(), "old"); !errors.Is(err, models.ErrSessionExpired) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestAuthState(t *testing.T) {
	users := newStubUsers(models.User{ID: "u1", Email: "b@example.com", Password: "hash", Category: models.CategoryBrokerShipper})
	svc := newUserService(t, users)

	state, err := svc.AuthState(context.Background(), "")
	if err != nil || state.User != nil || state.IsLoading {
		t.Fatalf("signed-out state = %+v, %v", state, err)
	}

	state, err = svc.AuthState(context.Background(), "u1")
	if err != nil {
		t.Fatalf("AuthState: %v", err)
	}
	if state.User == nil || state.User.Password != "" || state.DashboardPath != "/dashboard/broker-shipper" {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestDashboardPath(t *testing.T) {
	cases := map[string]string{
		models.CategoryOwnerOperator: "/dashboard/owner-operator",
		models.CategoryCarrier:       "/dashboard/carrier",
		models.CategoryBrokerShipper: "/dashboard/broker-shipper",
		"":                           "/login",
	}
	for category, want := range cases {
		if got := DashboardPath(category); got != want {
			t.Fatalf("DashboardPath(%q) = %s, want %s", category, got, want)
		}
	}
}

func TestTrialDaysLeft(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ends := func(d time.Duration) *time.Time { t := now.Add(d); return &t }
	cases := []struct {
		name string
		user models.User
		want int
	}{
		{"fresh", models.User{SubscriptionStatus: models.SubscriptionTrial, TrialEndsAt: ends(models.TrialPeriod)}, 14},
		{"partial day rounds up", models.User{SubscriptionStatus: models.SubscriptionTrial, TrialEndsAt: ends(36 * time.Hour)}, 2},
		{"ended", models.User{SubscriptionStatus: models.SubscriptionTrial, TrialEndsAt: ends(-time.Hour)}, 0},
		{"active plan", models.User{SubscriptionStatus: models.SubscriptionActive, TrialEndsAt: ends(time.Hour)}, 0},
		{"no trial", models.User{}, 0},
	}
	for _, tc := range cases {
		if got := TrialDaysLeft(tc.user, now); got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestRegisterDevice(t *testing.T) {
	users := newStubUsers(models.User{ID: "u1"})
	svc := newUserService(t, users)
	if err := svc.RegisterDevice(context.Background(), "u1", " tok "); err != nil {
		t.Fatalf("RegisterDevice: %v", err)
	}
	if users.fcm["u1"] != "tok" {
		t.Fatalf("token not stored: %q", users.fcm["u1"])
	}
	var verr *models.ValidationError
	if err := svc.RegisterDevice(context.Background(), "u1", ""); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
