// Package identity derives the pseudo-identity used everywhere else in the
// app. The identifier is a label, not a credential: two contacts that
// normalize to the same string collide, and nothing verifies the password.
package identity

import (
	"strings"

	"github.com/worklink-app/worklink_be/internal/models"
)

// Session is the transient identity held for the lifetime of a login.
type Session struct {
	ID            string
	Role          models.Role
	Authenticated bool
}

// Resolve produces the deterministic identifier for a role + contact pair:
// lower-case the contact, strip everything outside [a-z0-9], prefix the role.
// Resolve("worker", "John Doe!! 123") == "worker-johndoe123".
func Resolve(role models.Role, contact string) string {
	return string(role) + "-" + normalize(contact)
}

func normalize(contact string) string {
	lower := strings.ToLower(contact)
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, lower)
}

// ShortLabel returns the first four characters of an identifier, used for
// display names like "Client clie". Matches what the board shows in the
// header badge.
func ShortLabel(id string) string {
	if len(id) <= 4 {
		return id
	}
	return id[:4]
}
