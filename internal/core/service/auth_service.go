package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/postboard/api/internal/core/domain"
	"github.com/postboard/api/internal/core/ports"
)

// timingPassword is hashed at construction and compared against when a login
// names an unknown email, so both failure paths cost one bcrypt comparison.
const timingPassword = "postboard-timing-equaliser"

// fallbackTimingHash is a well-formed bcrypt hash used when timingPassword
// cannot be hashed.
const fallbackTimingHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration, login and the identity queries.
type AuthService struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenService
	validator ports.Validator
	log       zerolog.Logger
	dummyHash string
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	validator ports.Validator,
	log zerolog.Logger,
) *AuthService {
	dummy, err := hasher.Hash(timingPassword)
	if err != nil || dummy == "" {
		log.Warn().Err(err).Msg("failed to prepare timing hash, using fallback")
		dummy = fallbackTimingHash
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
		log:       log,
		dummyHash: dummy,
	}
}

// Register creates an account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.AuthPayload, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)
	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return &domain.AuthPayload{Token: token, User: created.Public()}, nil
}

// Login verifies credentials. Unknown email and wrong password both yield
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.AuthPayload, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(in.Password, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		s.log.Debug().Str("user_id", user.ID).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &domain.AuthPayload{Token: token, User: user.Public()}, nil
}

// Logout is stateless; the client discards its token.
func (s *AuthService) Logout(_ context.Context) bool {
	return true
}

// Me returns the caller's public projection, or nil when anonymous.
func (s *AuthService) Me(_ context.Context, identity domain.Identity) *domain.PublicUser {
	return identity.User()
}
