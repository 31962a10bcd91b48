package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/worklink-app/worklink_be/internal/identity"
	"github.com/worklink-app/worklink_be/internal/models"
)

func TestResolve_Normalization(t *testing.T) {
	cases := []struct {
		role    models.Role
		contact string
		want    string
	}{
		{models.RoleWorker, "John Doe!! 123", "worker-johndoe123"},
		{models.RoleWorker, "john.doe 123", "worker-johndoe123"},
		{models.RoleClient, "A@B.com", "client-abcom"},
		{models.RoleClient, "+91 98765 43210", "client-919876543210"},
		{models.RoleWorker, "!!!", "worker-"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, identity.Resolve(tc.role, tc.contact))
	}
}

// Two typographically distinct contacts that normalize identically collide.
// Intentional: the identifier is a label, not a credential.
func TestResolve_CollisionWeakness(t *testing.T) {
	a := identity.Resolve(models.RoleWorker, "John Doe!! 123")
	b := identity.Resolve(models.RoleWorker, "john.doe 123")
	assert.Equal(t, a, b)
}

func TestResolve_RoleSeparatesNamespaces(t *testing.T) {
	w := identity.Resolve(models.RoleWorker, "9876543210")
	c := identity.Resolve(models.RoleClient, "9876543210")
	assert.NotEqual(t, w, c)
}

func TestShortLabel(t *testing.T) {
	assert.Equal(t, "work", identity.ShortLabel("worker-johndoe123"))
	assert.Equal(t, "ab", identity.ShortLabel("ab"))
}
