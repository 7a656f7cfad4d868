package ports

import (
	"context"

	"github.com/postboard/api/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// FindByID returns domain.ErrPostNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns all posts ordered newest first.
	List(ctx context.Context) ([]*domain.Post, error)
	// Update overwrites title, content and updated_at. Last writer wins.
	Update(ctx context.Context, post *domain.Post) error
	// Delete reports whether a document was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
