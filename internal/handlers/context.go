package handlers

import "context"

type contextKey string

const (
	identityKey   contextKey = "identity"
	adminGrantKey contextKey = "admin_grant"
)

// Identity is the authenticated caller placed on the request context by the
// auth middleware.
type Identity struct {
	UserID   string
	Category string
	IsAdmin  bool
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.UserID != ""
}

// WithAdminGrant marks the request as carrying a verified admin grant.
func WithAdminGrant(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminGrantKey, true)
}

func HasAdminGrant(ctx context.Context) bool {
	ok, _ := ctx.Value(adminGrantKey).(bool)
	return ok
}
