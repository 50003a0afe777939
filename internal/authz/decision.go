// Package authz is the authorization decision engine. Decide is the single
// source of truth for the role × action table; services and controllers call
// it instead of re-implementing role checks.
package authz

import (
	"docvault-rag-be/internal/entity"
)

// DenyReason is the machine-readable reason attached to every deny.
type DenyReason string

const (
	ReasonInsufficientRole   DenyReason = "insufficient_role"
	ReasonDepartmentMismatch DenyReason = "department_mismatch"
	ReasonUnauthenticated    DenyReason = "unauthenticated"
)

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Decide evaluates the decision table for one identity, action and optional
// resource descriptor. It is a pure function: no storage, no side effects.
//
//	action          Employee  Manager                      Executive
//	Search          allow     allow                        allow
//	Ingest          deny      allow (own dept)             allow (any dept)
//	Retag           deny      allow (own dept)             allow (any dept)
//	DeleteDocument  deny      allow (own dept, < Exec tag) allow
//	ViewAuditLog    deny      deny                         allow
//	ManageUsers     deny      deny                         allow
func Decide(identity entity.Identity, action entity.Action, resource *entity.DocumentDescriptor) Decision {
	if !identity.Authenticated() {
		return Deny(ReasonUnauthenticated)
	}

	switch action {
	case entity.ActionSearch, entity.ActionLogin:
		return Allow()

	case entity.ActionIngest:
		if !identity.Role.Satisfies(entity.RoleManager) {
			return Deny(ReasonInsufficientRole)
		}
		// Cross-department ingestion is an Executive privilege, so a Manager
		// targeting a foreign department is short on role, not on department.
		if resource != nil && resource.Department != identity.Department && identity.Role != entity.RoleExecutive {
			return Deny(ReasonInsufficientRole)
		}
		return Allow()

	case entity.ActionRetag:
		if !identity.Role.Satisfies(entity.RoleManager) {
			return Deny(ReasonInsufficientRole)
		}
		if identity.Role == entity.RoleExecutive {
			return Allow()
		}
		if resource != nil && resource.Department != identity.Department {
			return Deny(ReasonDepartmentMismatch)
		}
		return Allow()

	case entity.ActionDeleteDocument:
		if !identity.Role.Satisfies(entity.RoleManager) {
			return Deny(ReasonInsufficientRole)
		}
		if identity.Role == entity.RoleExecutive {
			return Allow()
		}
		if resource != nil {
			if resource.Department != identity.Department {
				return Deny(ReasonDepartmentMismatch)
			}
			if resource.MinRole == entity.RoleExecutive {
				return Deny(ReasonInsufficientRole)
			}
		}
		return Allow()

	case entity.ActionViewAuditLog, entity.ActionManageUsers:
		if identity.Role != entity.RoleExecutive {
			return Deny(ReasonInsufficientRole)
		}
		return Allow()

	default:
		// Unknown actions are denied rather than silently allowed.
		return Deny(ReasonInsufficientRole)
	}
}
