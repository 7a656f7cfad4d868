package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/postboard/api/internal/core/domain"
)

type stubResolver struct {
	identity domain.Identity
	gotHdr   string
}

func (r *stubResolver) Resolve(_ context.Context, authHeader string) domain.Identity {
	r.gotHdr = authHeader
	return r.identity
}

func TestIdentity_AttachesAuthenticatedCaller(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	resolver := &stubResolver{identity: domain.Authenticated(domain.PublicUser{ID: "u1", Name: "Ann"})}
	handler := Identity(resolver)(func(c echo.Context) error {
		p, ok := IdentityFrom(c).Principal()
		if !ok || p.ID() != "u1" {
			t.Fatalf("expected principal u1, got %+v (ok=%v)", p, ok)
		}
		fromCtx := domain.IdentityFromContext(c.Request().Context())
		if fromCtx.IsAnonymous() {
			t.Fatalf("expected identity on request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resolver.gotHdr != "Bearer abc" {
		t.Fatalf("resolver got header %q", resolver.gotHdr)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestIdentity_AnonymousStillReachesHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Identity(&stubResolver{identity: domain.Anonymous()})(func(c echo.Context) error {
		called = true
		if !IdentityFrom(c).IsAnonymous() {
			t.Fatalf("expected anonymous identity")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestIdentityFrom_WithoutMiddlewareIsAnonymous(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if !IdentityFrom(c).IsAnonymous() {
		t.Fatalf("expected anonymous identity")
	}
}
