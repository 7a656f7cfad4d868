package ports

import (
	"context"

	"github.com/postboard/api/internal/core/domain"
)

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Title   string `validate:"required,min=1,max=120"`
	Content string `validate:"required,min=1"`
}

// UpdatePostInput is a partial update: nil fields are left untouched, while
// non-nil fields obey the same bounds as on creation.
type UpdatePostInput struct {
	ID      string  `validate:"required"`
	Title   *string `validate:"omitnil,min=1,max=120"`
	Content *string `validate:"omitnil,min=1"`
}

// PostService defines the content use cases. Mutations take the caller's
// identity and apply the authorization guard themselves.
type PostService interface {
	List(ctx context.Context) ([]*domain.PostView, error)
	// Get returns nil, nil when the post does not exist.
	Get(ctx context.Context, id string) (*domain.PostView, error)
	Create(ctx context.Context, identity domain.Identity, input CreatePostInput) (*domain.PostView, error)
	Update(ctx context.Context, identity domain.Identity, input UpdatePostInput) (*domain.PostView, error)
	// Delete returns false, nil when the post does not exist.
	Delete(ctx context.Context, identity domain.Identity, id string) (bool, error)
}
