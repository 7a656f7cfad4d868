package domain

import "errors"

// Error kinds surfaced to callers. Every error returned by the core matches
// exactly one of these with errors.Is, or none for internal failures.
var (
	ErrBadInput     = errors.New("bad user input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Business-rule violations. All of them are BadInput.
var (
	ErrInvalidCredentials = &InputError{Message: "Invalid credentials"}
	ErrEmailTaken         = &InputError{Message: "Email already registered"}
	ErrPostNotFound       = &InputError{Message: "Post not found"}
)

// Store-level lookups.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidToken = errors.New("invalid token")
)

// InputError is a BadInput failure with a client-safe message.
type InputError struct {
	Message string
}

// BadInput returns an InputError carrying msg.
func BadInput(msg string) error {
	return &InputError{Message: msg}
}

func (e *InputError) Error() string {
	return e.Message
}

// Is makes every InputError match ErrBadInput.
func (e *InputError) Is(target error) bool {
	return target == ErrBadInput
}
