package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/postboard/api/internal/core/domain"
	"github.com/postboard/api/internal/core/ports"
)

const bearerScheme = "bearer"

// IdentityResolver maps a bearer credential to the caller's identity. It
// never fails: anything short of a valid token for an existing user resolves
// to anonymous, and rejection is left to the authorization guard.
type IdentityResolver struct {
	tokens ports.TokenService
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewIdentityResolver(tokens ports.TokenService, users ports.UserRepository, log zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users, log: log}
}

func (r *IdentityResolver) Resolve(ctx context.Context, authHeader string) domain.Identity {
	token, ok := bearerToken(authHeader)
	if !ok {
		return domain.Anonymous()
	}

	userID, err := r.tokens.Verify(token)
	if err != nil {
		return domain.Anonymous()
	}

	user, err := r.users.FindPublicByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			r.log.Warn().Err(err).Str("user_id", userID).Msg("identity lookup failed, continuing anonymously")
		}
		return domain.Anonymous()
	}

	return domain.Authenticated(*user)
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
