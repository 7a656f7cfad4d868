package ports

import (
	"context"

	"github.com/postboard/api/internal/core/domain"
)

// UserRepository defines persistence operations for the users collection.
type UserRepository interface {
	// Create inserts user and returns it with the store-generated ID.
	// A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail is the only read path that loads the password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindPublicByID returns domain.ErrUserNotFound when no user matches.
	FindPublicByID(ctx context.Context, id string) (*domain.PublicUser, error)
	// FindPublicByIDs resolves owners in one round trip. Unknown ids are omitted.
	FindPublicByIDs(ctx context.Context, ids []string) (map[string]domain.PublicUser, error)
}
