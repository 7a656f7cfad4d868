package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/postboard/api/internal/api/middleware"
	"github.com/postboard/api/internal/core/domain"
)

// callerIdentity returns the identity attached by the Identity middleware.
// Requests that bypassed it are anonymous.
func callerIdentity(c echo.Context) domain.Identity {
	return middleware.IdentityFrom(c)
}

// errInvalidPayload is returned when the request body cannot be decoded.
var errInvalidPayload = domain.BadInput("invalid payload")
