package domain

import "context"

// Identity is the per-request caller: either anonymous or an authenticated
// user. The zero value is anonymous.
type Identity struct {
	user *PublicUser
}

// Anonymous returns the identity of a caller without valid credentials.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns the identity of a verified caller.
func Authenticated(u PublicUser) Identity {
	return Identity{user: &u}
}

// IsAnonymous reports whether no user is attached.
func (i Identity) IsAnonymous() bool {
	return i.user == nil
}

// Principal converts the identity into an authenticated principal. ok is false
// for anonymous callers.
func (i Identity) Principal() (p Principal, ok bool) {
	if i.user == nil {
		return Principal{}, false
	}
	return Principal{user: *i.user}, true
}

// User returns a copy of the attached user, or nil when anonymous.
func (i Identity) User() *PublicUser {
	if i.user == nil {
		return nil
	}
	u := *i.user
	return &u
}

// Principal is an identity that has passed the authentication check. It can
// only be obtained through Identity.Principal, so owner checks never see an
// anonymous caller.
type Principal struct {
	user PublicUser
}

// ID returns the authenticated user's identifier.
func (p Principal) ID() string {
	return p.user.ID
}

// User returns the authenticated user's public projection.
func (p Principal) User() PublicUser {
	return p.user
}

type identityCtxKey struct{}

// ContextWithIdentity returns a copy of ctx carrying identity.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFromContext returns the identity stored in ctx, or anonymous.
func IdentityFromContext(ctx context.Context) Identity {
	identity, _ := ctx.Value(identityCtxKey{}).(Identity)
	return identity
}
