package ports

import (
	"context"

	"github.com/postboard/api/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string `validate:"required,min=2,max=60"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=128"`
}

// LoginInput carries the fields of a login request.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=128"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.AuthPayload, error)
	Login(ctx context.Context, input LoginInput) (*domain.AuthPayload, error)
	Logout(ctx context.Context) bool
	Me(ctx context.Context, identity domain.Identity) *domain.PublicUser
}

// IdentityResolver turns a raw Authorization header into a caller identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, authHeader string) domain.Identity
}
