package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/postboard/api/internal/core/domain"
	"github.com/postboard/api/internal/core/ports"
	"github.com/postboard/api/internal/infrastructure/security"
	"github.com/postboard/api/internal/infrastructure/validation"
)

func TestAuthService_Register_Success(t *testing.T) {
	f := newFixture()

	payload, err := f.auth.Register(context.Background(), ports.RegisterInput{
		Name:     "  Ann ",
		Email:    " A@X.com ",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if payload.User.Name != "Ann" || payload.User.Email != "a@x.com" {
		t.Fatalf("expected trimmed name and normalised email, got %+v", payload.User)
	}
	if payload.User.CreatedAt.IsZero() || !payload.User.CreatedAt.Equal(payload.User.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v / %v", payload.User.CreatedAt, payload.User.UpdatedAt)
	}

	subject, err := f.tokens.Verify(payload.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if subject != payload.User.ID {
		t.Fatalf("token subject %q, want %q", subject, payload.User.ID)
	}

	stored, err := f.users.FindByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "password1" {
		t.Fatalf("expected password to be hashed, got %q", stored.PasswordHash)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name  string
		input ports.RegisterInput
		msg   string
	}{
		{"short name", ports.RegisterInput{Name: "A", Email: "a@x.com", Password: "password1"}, "name must be at least 2 characters"},
		{"bad email", ports.RegisterInput{Name: "Ann", Email: "not-an-email", Password: "password1"}, "email must be a valid email"},
		{"short password", ports.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "short"}, "password must be at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(context.Background(), tt.input)
			if !errors.Is(err, domain.ErrBadInput) {
				t.Fatalf("expected bad input, got %v", err)
			}
			if err.Error() != tt.msg {
				t.Fatalf("expected %q, got %q", tt.msg, err.Error())
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newFixture()
	f.signUp("Ann", "a@x.com")

	_, err := f.auth.Register(context.Background(), ports.RegisterInput{
		Name:     "Ann Again",
		Email:    "A@X.COM",
		Password: "password2",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if !errors.Is(err, domain.ErrBadInput) {
		t.Fatalf("duplicate email must be bad input")
	}
	if n := len(f.users.users); n != 1 {
		t.Fatalf("expected exactly one stored user, got %d", n)
	}
}

func TestAuthService_Register_UniqueIndexRace(t *testing.T) {
	f := newFixture()
	// The lookup misses but the insert hits the unique email index.
	f.users.createErr = domain.ErrEmailTaken

	payload, err := f.auth.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "password1"})
	if payload != nil {
		t.Fatalf("expected no payload, got %+v", payload)
	}
	if !errors.Is(err, domain.ErrEmailTaken) || !errors.Is(err, domain.ErrBadInput) {
		t.Fatalf("expected ErrEmailTaken as bad input, got %v", err)
	}
	if err.Error() != domain.ErrEmailTaken.Error() {
		t.Fatalf("expected %q, got %q", domain.ErrEmailTaken.Error(), err.Error())
	}
	if n := len(f.users.users); n != 0 {
		t.Fatalf("expected no stored users, got %d", n)
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	f := newFixture()
	f.users.err = errors.New("connection reset")

	_, err := f.auth.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "a@x.com", Password: "password1"})
	if err == nil || errors.Is(err, domain.ErrBadInput) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newFixture()
	_, registered := f.signUp("Ann", "a@x.com")

	payload, err := f.auth.Login(context.Background(), ports.LoginInput{Email: "A@x.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if payload.User.ID != registered.User.ID {
		t.Fatalf("expected user %q, got %q", registered.User.ID, payload.User.ID)
	}
	subject, err := f.tokens.Verify(payload.Token)
	if err != nil || subject != registered.User.ID {
		t.Fatalf("login token invalid: %v (subject %q)", err, subject)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture()
	f.signUp("Ann", "a@x.com")

	f.hasher.resetCount()
	_, wrongPassword := f.auth.Login(context.Background(), ports.LoginInput{Email: "a@x.com", Password: "wrong-password"})
	wrongPasswordVerifies := f.hasher.verifies

	f.hasher.resetCount()
	_, unknownEmail := f.auth.Login(context.Background(), ports.LoginInput{Email: "nobody@x.com", Password: "password1"})
	unknownEmailVerifies := f.hasher.verifies

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) || !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPassword.Error(), unknownEmail.Error())
	}
	if wrongPasswordVerifies != 1 || unknownEmailVerifies != 1 {
		t.Fatalf("expected one comparison on each path, got %d / %d", wrongPasswordVerifies, unknownEmailVerifies)
	}
}

func TestAuthService_Login_UnknownEmailDoesNotHash(t *testing.T) {
	f := newFixture()

	f.hasher.resetCount()
	_, err := f.auth.Login(context.Background(), ports.LoginInput{Email: "nobody@x.com", Password: "password1"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if f.hasher.hashes != 0 || f.hasher.verifies != 1 {
		t.Fatalf("expected 0 hashes and 1 comparison, got %d / %d", f.hasher.hashes, f.hasher.verifies)
	}
}

func TestAuthService_Login_TimingHashFallback(t *testing.T) {
	hasher := newCountingHasher()
	hasher.hashErr = errors.New("entropy unavailable")
	auth := NewAuthService(newStubUserRepo(), hasher, security.NewJWTService(testSecret, time.Hour), validation.New(), zerolog.Nop())

	_, err := auth.Login(context.Background(), ports.LoginInput{Email: "nobody@x.com", Password: "password1"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if hasher.verifies != 1 {
		t.Fatalf("expected one comparison, got %d", hasher.verifies)
	}
	if hasher.lastHash != fallbackTimingHash {
		t.Fatalf("expected comparison against the fallback hash, got %q", hasher.lastHash)
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	f := newFixture()
	f.users.err = errors.New("connection reset")

	_, err := f.auth.Login(context.Background(), ports.LoginInput{Email: "a@x.com", Password: "password1"})
	if err == nil || errors.Is(err, domain.ErrBadInput) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestAuthService_MeAndLogout(t *testing.T) {
	f := newFixture()
	identity, payload := f.signUp("Ann", "a@x.com")

	if me := f.auth.Me(context.Background(), domain.Anonymous()); me != nil {
		t.Fatalf("expected nil for anonymous, got %+v", me)
	}
	me := f.auth.Me(context.Background(), identity)
	if me == nil || me.ID != payload.User.ID {
		t.Fatalf("expected %q, got %+v", payload.User.ID, me)
	}
	if !f.auth.Logout(context.Background()) {
		t.Fatalf("logout must report success")
	}
}
