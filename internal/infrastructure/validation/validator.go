// Package validation adapts go-playground/validator to the core's Validator
// port and to echo.Validator.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/postboard/api/internal/core/domain"
)

// Validator wraps go-playground/validator. Only the first field error is
// reported, as a domain.InputError.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator ready to be injected into services or assigned to
// echo.Echo.Validator.
func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate satisfies both ports.Validator and echo.Validator.
func (v *Validator) Validate(i any) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return domain.BadInput(fieldError(ve[0]))
	}
	return fmt.Errorf("validate: %w", err)
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if fe.Param() == "1" {
			return field + " must not be empty"
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
