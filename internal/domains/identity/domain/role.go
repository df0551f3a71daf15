package domain

import (
	"errors"
	"strings"
)

// Role enumerates the closed set of actor roles.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
)

// Capability names an action guarded by role.
type Capability int

const (
	// CapManageOrders allows updating fulfilment fields on any order.
	CapManageOrders Capability = iota + 1
	// CapManageCatalog allows creating and editing products.
	CapManageCatalog
	// CapManageCategories allows creating categories.
	CapManageCategories
	// CapViewAnalytics allows reading the admin dashboard.
	CapViewAnalytics
	// CapActOnAnyOrder allows reading or cancelling orders owned by others.
	CapActOnAnyOrder
	// CapEditAnyProduct allows editing products owned by other vendors.
	CapEditAnyProduct
)

var ErrInvalidRole = errors.New("role is invalid")

var capabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapManageOrders:     true,
		CapManageCatalog:    true,
		CapManageCategories: true,
		CapViewAnalytics:    true,
		CapActOnAnyOrder:    true,
		CapEditAnyProduct:   true,
	},
	RoleVendor: {
		CapManageOrders:  true,
		CapManageCatalog: true,
	},
	RoleUser: {},
}

// ParseRole converts raw input into a Role, defaulting blank input to RoleUser.
func ParseRole(raw string) (Role, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return RoleUser, nil
	}
	role := Role(raw)
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := capabilities[r]
	return ok
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}

// Principal is the authenticated actor carried by a bearer credential.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

// Can reports whether the principal's role grants the capability.
func (p Principal) Can(c Capability) bool {
	return p.Role.Can(c)
}

// Owns reports whether the principal is the given owner.
func (p Principal) Owns(ownerID string) bool {
	return p.UserID != "" && p.UserID == ownerID
}
