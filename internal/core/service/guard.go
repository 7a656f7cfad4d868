package service

import "github.com/postboard/api/internal/core/domain"

// RequireAuthenticated fails with domain.ErrUnauthorized for anonymous callers.
func RequireAuthenticated(identity domain.Identity) (domain.Principal, error) {
	p, ok := identity.Principal()
	if !ok {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}

// RequireOwner fails with domain.ErrForbidden unless p owns the resource.
func RequireOwner(p domain.Principal, ownerID string) error {
	if !domain.SameID(p.ID(), ownerID) {
		return domain.ErrForbidden
	}
	return nil
}
