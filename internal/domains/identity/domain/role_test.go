package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleCapabilities(t *testing.T) {
	require.True(t, RoleAdmin.Can(CapActOnAnyOrder))
	require.True(t, RoleAdmin.Can(CapViewAnalytics))
	require.True(t, RoleVendor.Can(CapManageOrders))
	require.True(t, RoleVendor.Can(CapManageCatalog))
	require.False(t, RoleVendor.Can(CapActOnAnyOrder))
	require.False(t, RoleVendor.Can(CapManageCategories))
	require.False(t, RoleUser.Can(CapManageOrders))
	require.False(t, Role("root").Can(CapManageOrders))
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("")
	require.NoError(t, err)
	require.Equal(t, RoleUser, role)

	role, err = ParseRole(" Vendor ")
	require.NoError(t, err)
	require.Equal(t, RoleVendor, role)

	_, err = ParseRole("superuser")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestNewUser_NormalizesEmail(t *testing.T) {
	user, err := NewUser("u1", " Alice ", " Alice@Example.COM ", RoleUser)
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "alice@example.com", user.Email)

	_, err = NewUser("u2", "Bob", "not-an-email", RoleUser)
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser("u3", "  ", "c@example.com", RoleUser)
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestPrincipalOwns(t *testing.T) {
	p := Principal{UserID: "u1", Role: RoleUser}
	require.True(t, p.Owns("u1"))
	require.False(t, p.Owns("u2"))
	require.False(t, Principal{}.Owns(""))
}
