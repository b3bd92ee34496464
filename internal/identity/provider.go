// Package identity is the boundary to the external auth layer. The engine
// consumes a user id and display name and nothing else - credentials never
// cross this boundary.
package identity

import (
	"context"

	"github.com/cyberquest/backend/internal/domain"
)

// Provider supplies the active user. The progression engine is inert without
// one: every mutating operation fails closed when no user is present.
type Provider interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}

type ctxKey string

const userKey ctxKey = "activeUser"

// WithUser returns a context carrying the active user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext extracts the active user from the context, if present.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	v := ctx.Value(userKey)
	if v == nil {
		return nil, false
	}
	if user, ok := v.(*domain.User); ok && user != nil {
		return user, true
	}
	return nil, false
}

// ContextProvider resolves the user previously stored on the request context
// by the identity middleware.
type ContextProvider struct{}

// NewContextProvider creates a new ContextProvider
func NewContextProvider() *ContextProvider {
	return &ContextProvider{}
}

// CurrentUser returns the context user or ErrNoActiveUser (fail closed,
// never silently a different user).
func (p *ContextProvider) CurrentUser(ctx context.Context) (*domain.User, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrNoActiveUser
	}
	return user, nil
}
