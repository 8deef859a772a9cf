package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"haulcentral/internal/handlers"
	"haulcentral/internal/models"
)

func identityEcho(t *testing.T, got *handlers.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := handlers.IdentityFrom(r.Context())
		if ok {
			*got = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	app := newTestApp(t)
	live := accessToken(t, app, "u1", models.CategoryCarrier, time.Minute)
	expired := accessToken(t, app, "u1", models.CategoryCarrier, -time.Minute)

	cases := []struct {
		name        string
		headers     map[string]string
		wantStatus  int
		wantReissue bool
	}{
		{"no credentials", nil, http.StatusUnauthorized, false},
		{"valid bearer", map[string]string{"Authorization": "Bearer " + live}, http.StatusOK, false},
		{"garbage bearer", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, false},
		{"expired bearer with live refresh", map[string]string{"Authorization": "Bearer " + expired, "Refresh-Token": "live-refresh"}, http.StatusOK, true},
		{"expired bearer with stale refresh", map[string]string{"Authorization": "Bearer " + expired, "Refresh-Token": "stale-refresh"}, http.StatusUnauthorized, false},
		{"unknown refresh", map[string]string{"Refresh-Token": "who"}, http.StatusUnauthorized, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got handlers.Identity
			req := httptest.NewRequest(http.MethodGet, "/trucks", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			app.authenticate(identityEcho(t, &got)).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if tc.wantStatus == http.StatusOK && (got.UserID != "u1" || got.Category != models.CategoryCarrier) {
				t.Fatalf("unexpected identity %+v", got)
			}
			reissued := rec.Header().Get("Authorization")
			if tc.wantReissue != (reissued != "") {
				t.Fatalf("reissue mismatch, header %q", reissued)
			}
			if tc.wantReissue {
				claims, err := app.tokens.Parse(strings.TrimPrefix(reissued, "Bearer "))
				if err != nil || claims.UserID != "u1" {
					t.Fatalf("reissued token invalid: %v", err)
				}
			}
		})
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	app := newTestApp(t)
	var got handlers.Identity
	rec := httptest.NewRecorder()
	app.optionalAuth(identityEcho(t, &got)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.UserID != "" {
		t.Fatalf("expected no identity, got %+v", got)
	}
}

func TestRequireCategory(t *testing.T) {
	app := newTestApp(t)
	gate := app.authenticate(app.requireCategory(models.CategoryBrokerShipper)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	cases := []struct {
		category string
		want     int
	}{
		{models.CategoryBrokerShipper, http.StatusOK},
		{models.CategoryCarrier, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/broker-shipper", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken(t, app, "u9", tc.category, time.Minute))
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.category, tc.want, rec.Code)
		}
	}
}

func TestRequireAdminGrant(t *testing.T) {
	app := newTestApp(t)
	var granted bool
	gate := app.authenticate(app.requireAdminGrant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		granted = handlers.HasAdminGrant(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	own, _, err := app.tokens.NewAdminGrant("u1", time.Minute)
	if err != nil {
		t.Fatalf("NewAdminGrant: %v", err)
	}
	other, _, err := app.tokens.NewAdminGrant("u2", time.Minute)
	if err != nil {
		t.Fatalf("NewAdminGrant: %v", err)
	}
	access := accessToken(t, app, "u1", models.CategoryCarrier, time.Minute)

	cases := []struct {
		name  string
		grant string
		want  int
	}{
		{"missing grant", "", http.StatusForbidden},
		{"grant for another user", other, http.StatusForbidden},
		{"access token as grant", access, http.StatusForbidden},
		{"own grant", own, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			granted = false
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			req.Header.Set("Authorization", "Bearer "+access)
			if tc.grant != "" {
				req.Header.Set("X-Admin-Grant", tc.grant)
			}
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if granted != (tc.want == http.StatusOK) {
				t.Fatalf("grant flag %v for status %d", granted, rec.Code)
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApp(t)
	h := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Header().Get("Connection") != "close" {
		t.Fatal("expected Connection: close")
	}
}
