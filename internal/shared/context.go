package shared

import (
	"context"

	"github.com/google/uuid"
)

type userContextKey struct{}

// AuthUser is the identity resolved by the session guard for the current request.
type AuthUser struct {
	ID    uuid.UUID
	Email string
}

// ContextWithUser stores the authenticated user in context.
func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) *AuthUser {
	user, _ := ctx.Value(userContextKey{}).(*AuthUser)
	return user
}
