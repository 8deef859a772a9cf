package main

import (
	"fmt"
	"net/http"
	"strings"

	"haulcentral/internal/handlers"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// identify resolves the caller from the bearer token. An expired or missing
// access token falls back to the Refresh-Token header; a successful refresh
// hands the new access token back in the Authorization response header.
func (app *application) identify(w http.ResponseWriter, r *http.Request) (handlers.Identity, bool) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		claims, err := app.tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err == nil {
			return handlers.Identity{UserID: claims.UserID, Category: claims.Category, IsAdmin: claims.IsAdmin}, true
		}
	}

	refreshToken := r.Header.Get("Refresh-Token")
	if refreshToken == "" {
		return handlers.Identity{}, false
	}
	session, accessToken, err := app.userService.Refresh(r.Context(), refreshToken)
	if err != nil {
		return handlers.Identity{}, false
	}
	w.Header().Set("Authorization", "Bearer "+accessToken)
	return handlers.Identity{UserID: session.UserID, Category: session.Category, IsAdmin: session.IsAdmin}, true
}

func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := app.identify(w, r)
		if !ok {
			app.clientError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(handlers.WithIdentity(r.Context(), id)))
	})
}

// optionalAuth attaches the caller when one can be resolved and lets
// anonymous requests through.
func (app *application) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := app.identify(w, r); ok {
			r = r.WithContext(handlers.WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) requireCategory(category string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := handlers.IdentityFrom(r.Context())
			if !ok {
				app.clientError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if id.Category != category {
				app.clientError(w, http.StatusForbidden, "dashboard not available for this account")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAdminGrant admits requests whose X-Admin-Grant header was issued to
// the authenticated caller by a keycode verification.
func (app *application) requireAdminGrant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := handlers.IdentityFrom(r.Context())
		if !ok {
			app.clientError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		grant := r.Header.Get("X-Admin-Grant")
		if grant == "" {
			app.clientError(w, http.StatusForbidden, "admin verification required")
			return
		}
		userID, err := app.tokens.ParseAdminGrant(grant)
		if err != nil || userID != id.UserID {
			app.clientError(w, http.StatusForbidden, "admin verification required")
			return
		}
		next.ServeHTTP(w, r.WithContext(handlers.WithAdminGrant(r.Context())))
	})
}
