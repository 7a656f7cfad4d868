package ports

// PasswordHasher hashes and verifies passwords with an adaptive one-way function.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify fails closed: a malformed hash is a mismatch.
	Verify(password, hash string) bool
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the subject, or domain.ErrInvalidToken for any failure.
	Verify(token string) (string, error)
}

// Validator checks the shape of an input struct. Failures are domain.InputError
// values carrying the first field message.
type Validator interface {
	Validate(i any) error
}
