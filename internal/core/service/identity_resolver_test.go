package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/postboard/api/internal/core/domain"
)

type stubTokens struct {
	subjects map[string]string
}

func (s *stubTokens) Issue(userID string) (string, error) {
	return "tok-" + userID, nil
}

func (s *stubTokens) Verify(token string) (string, error) {
	if sub, ok := s.subjects[token]; ok {
		return sub, nil
	}
	return "", domain.ErrInvalidToken
}

func TestIdentityResolver_Resolve(t *testing.T) {
	users := newStubUserRepo()
	ann, _ := users.Create(context.Background(), &domain.User{Name: "Ann", Email: "a@x.com", PasswordHash: "h"})

	tokens := &stubTokens{subjects: map[string]string{
		"good":    ann.ID,
		"deleted": "user99",
	}}
	resolver := NewIdentityResolver(tokens, users, zerolog.Nop())

	tests := []struct {
		name      string
		header    string
		wantUser  string
		anonymous bool
	}{
		{"valid bearer", "Bearer good", ann.ID, false},
		{"scheme is case-insensitive", "bearer good", ann.ID, false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic good", "", true},
		{"no token", "Bearer ", "", true},
		{"bad or expired token", "Bearer expired", "", true},
		{"user no longer exists", "Bearer deleted", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := resolver.Resolve(context.Background(), tt.header)
			if identity.IsAnonymous() != tt.anonymous {
				t.Fatalf("anonymous = %v, want %v", identity.IsAnonymous(), tt.anonymous)
			}
			if !tt.anonymous && identity.User().ID != tt.wantUser {
				t.Fatalf("expected user %q, got %q", tt.wantUser, identity.User().ID)
			}
		})
	}
}

func TestIdentityResolver_StoreFailureIsAnonymous(t *testing.T) {
	users := newStubUserRepo()
	users.err = errors.New("connection reset")
	resolver := NewIdentityResolver(&stubTokens{subjects: map[string]string{"good": "user01"}}, users, zerolog.Nop())

	if identity := resolver.Resolve(context.Background(), "Bearer good"); !identity.IsAnonymous() {
		t.Fatalf("expected anonymous identity when the store fails")
	}
}

func TestIdentityResolver_ResolvesIssuedTokens(t *testing.T) {
	f := newFixture()
	identity, payload := f.signUp("Ann", "a@x.com")

	if identity.IsAnonymous() || identity.User().ID != payload.User.ID {
		t.Fatalf("expected identity for %q, got %+v", payload.User.ID, identity.User())
	}
}
