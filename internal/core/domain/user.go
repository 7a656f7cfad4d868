package domain

import (
	"strings"
	"time"
)

// User models a registered account as stored in the credential store.
// PasswordHash never leaves the core; use Public before crossing a trust boundary.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the password-free projection of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the projection of u without the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthPayload is returned by register and login only.
type AuthPayload struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// NormalizeEmail trims and lower-cases an address the way the store indexes it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeID canonicalises an identifier before comparison.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// SameID reports whether two identifiers refer to the same record.
func SameID(a, b string) bool {
	na, nb := NormalizeID(a), NormalizeID(b)
	return na != "" && na == nb
}
