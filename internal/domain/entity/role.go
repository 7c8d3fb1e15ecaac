// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role is the coarse authorization level carried in access tokens.
type Role string

const (
	// RoleAgent is a regular CRM user working their own book of business.
	RoleAgent Role = "agent"
	// RoleBroker supervises agents.
	RoleBroker Role = "broker"
	// RoleAdmin may read the security trail of every identity.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAgent, RoleBroker, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsElevated reports whether the role may see other identities' security events.
func (r Role) IsElevated() bool {
	return r == RoleAdmin
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// Elevated reports whether any role in the set is elevated.
func (rs Roles) Elevated() bool {
	return slices.ContainsFunc(rs, Role.IsElevated)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
