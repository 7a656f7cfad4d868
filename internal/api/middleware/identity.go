package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/postboard/api/internal/api/metrics"
	"github.com/postboard/api/internal/core/domain"
	"github.com/postboard/api/internal/core/ports"
)

// IdentityKey is the echo context key holding the caller's domain.Identity.
const IdentityKey = "identity"

// Identity resolves the Authorization header once per request and attaches
// the result to both the echo context and the request context. It never
// rejects a request; handlers decide whether an identity is required.
func Identity(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			identity := resolver.Resolve(req.Context(), req.Header.Get(echo.HeaderAuthorization))

			if identity.IsAnonymous() {
				metrics.IdentityResolutionsTotal.WithLabelValues("anonymous").Inc()
			} else {
				metrics.IdentityResolutionsTotal.WithLabelValues("authenticated").Inc()
			}

			c.Set(IdentityKey, identity)
			c.SetRequest(req.WithContext(domain.ContextWithIdentity(req.Context(), identity)))
			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by Identity, or anonymous when
// the middleware did not run.
func IdentityFrom(c echo.Context) domain.Identity {
	identity, _ := c.Get(IdentityKey).(domain.Identity)
	return identity
}
