package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the ordered authorization tier. The numeric backing value defines
// the total order Employee < Manager < Executive; comparisons never go
// through the string name.
type Role int

const (
	RoleEmployee Role = iota + 1
	RoleManager
	RoleExecutive
)

const (
	roleNameEmployee  = "Employee"
	roleNameManager   = "Manager"
	roleNameExecutive = "Executive"
)

// ParseRole maps a stored role name to its Role value. Unknown names are
// rejected here, at Identity construction time, so that comparison code
// never has to deal with an ambiguous role.
func ParseRole(name string) (Role, error) {
	switch name {
	case roleNameEmployee:
		return RoleEmployee, nil
	case roleNameManager:
		return RoleManager, nil
	case roleNameExecutive:
		return RoleExecutive, nil
	default:
		return 0, fmt.Errorf("unknown role %q", name)
	}
}

func (r Role) String() string {
	switch r {
	case RoleEmployee:
		return roleNameEmployee
	case RoleManager:
		return roleNameManager
	case RoleExecutive:
		return roleNameExecutive
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reports whether r is one of the three known tiers.
func (r Role) Valid() bool {
	return r >= RoleEmployee && r <= RoleExecutive
}

// Satisfies reports whether r grants at least the given required tier.
func (r Role) Satisfies(required Role) bool {
	return r >= required
}

// DepartmentMatches applies the department rule for the role: Executives see
// every department, everyone else needs an exact match.
func (r Role) DepartmentMatches(userDept, docDept string) bool {
	if r == RoleExecutive {
		return true
	}
	return userDept == docDept
}

// Identity is the authenticated caller as seen by the core. It is built once
// per request by the JWT middleware and passed explicitly into every service
// call; there is no ambient "current user".
type Identity struct {
	SubjectId  uuid.UUID
	Role       Role
	Department string
}

// Authenticated reports whether the identity carries a usable subject and a
// known role.
func (i Identity) Authenticated() bool {
	return i.SubjectId != uuid.Nil && i.Role.Valid()
}
