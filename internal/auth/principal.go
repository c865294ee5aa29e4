package auth

import (
	"context"

	"workout-tracker/internal/models"
)

type contextKey struct{}

// Principal is the identity of the user behind an authenticated request.
// Whether a request is authenticated is decided by the session store, not by the Principal.
type Principal struct {
	UserID   int64
	Username string
}

// PrincipalFromUser builds the Principal for a stored user.
func PrincipalFromUser(u *models.User) Principal {
	return Principal{UserID: u.ID, Username: u.Username}
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PrincipalFrom returns the Principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
