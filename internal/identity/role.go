// Package identity supplies the current user's role to the scheduling
// engine. Role resolution (login, sessions) lives outside this module; the
// engine only needs to know whether the session may mutate the schedule.
package identity

import (
	"errors"
	"fmt"
)

// ErrInvalidRole is returned for unknown role names.
var ErrInvalidRole = errors.New("unknown role")

// Role is the permission level of the current session.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleTechnician    Role = "technician"
	RoleViewer        Role = "viewer"
)

// ParseRole converts a string to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleAdministrator, RoleTechnician, RoleViewer:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// CanMutate returns true for roles allowed to change the schedule.
// Viewers keep full read and navigation access.
func (r Role) CanMutate() bool {
	return r == RoleAdministrator || r == RoleTechnician
}

// Provider supplies the role of the current session.
type Provider interface {
	Role() Role
}

// Static is a Provider with a fixed role, resolved once at startup.
type Static struct {
	role Role
}

// NewStatic creates a Static provider.
func NewStatic(role Role) *Static {
	return &Static{role: role}
}

// Role implements Provider.
func (s *Static) Role() Role {
	return s.role
}
