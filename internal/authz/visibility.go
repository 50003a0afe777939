package authz

import (
	"docvault-rag-be/internal/entity"
)

// VisibilityPredicate tests whether one descriptor is readable by the
// identity it was derived from. Predicates are recomputed per request and
// never shared between identities.
type VisibilityPredicate func(d *entity.DocumentDescriptor) bool

// Visibility derives the read predicate for an identity:
// role satisfies the descriptor's minimum AND the department rule holds.
// Only current (published) descriptors are visible.
func Visibility(identity entity.Identity) VisibilityPredicate {
	return func(d *entity.DocumentDescriptor) bool {
		if d == nil || !d.Current {
			return false
		}
		if !identity.Role.Satisfies(d.MinRole) {
			return false
		}
		return identity.Role.DepartmentMatches(identity.Department, d.Department)
	}
}
