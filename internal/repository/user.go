package repository

import (
	"context"

	"github.com/cyberquest/backend/internal/domain"
)

// User mirrors identities seen from the external auth layer.
// Display names only; credentials never cross this boundary.
type User interface {
	Upsert(ctx context.Context, user *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, userID string) error
}
