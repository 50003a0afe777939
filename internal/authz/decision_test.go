package authz

import (
	"testing"

	"docvault-rag-be/internal/entity"

	"github.com/google/uuid"
)

func identity(role entity.Role, dept string) entity.Identity {
	return entity.Identity{SubjectId: uuid.New(), Role: role, Department: dept}
}

func descriptor(dept string, minRole entity.Role) *entity.DocumentDescriptor {
	return &entity.DocumentDescriptor{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		Department: dept,
		MinRole:    minRole,
		Current:    true,
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name        string
		identity    entity.Identity
		action      entity.Action
		resource    *entity.DocumentDescriptor
		wantAllowed bool
		wantReason  DenyReason
	}{
		{
			name:        "employee can search",
			identity:    identity(entity.RoleEmployee, "engineering"),
			action:      entity.ActionSearch,
			wantAllowed: true,
		},
		{
			name:        "unauthenticated caller denied",
			identity:    entity.Identity{},
			action:      entity.ActionSearch,
			wantAllowed: false,
			wantReason:  ReasonUnauthenticated,
		},
		{
			name:        "employee cannot ingest",
			identity:    identity(entity.RoleEmployee, "engineering"),
			action:      entity.ActionIngest,
			resource:    descriptor("engineering", entity.RoleEmployee),
			wantAllowed: false,
			wantReason:  ReasonInsufficientRole,
		},
		{
			name:        "manager ingests into own department",
			identity:    identity(entity.RoleManager, "engineering"),
			action:      entity.ActionIngest,
			resource:    descriptor("engineering", entity.RoleEmployee),
			wantAllowed: true,
		},
		{
			name:        "manager cannot ingest into foreign department",
			identity:    identity(entity.RoleManager, "engineering"),
			action:      entity.ActionIngest,
			resource:    descriptor("finance", entity.RoleEmployee),
			wantAllowed: false,
			wantReason:  ReasonInsufficientRole,
		},
		{
			name:        "executive ingests into any department",
			identity:    identity(entity.RoleExecutive, "management"),
			action:      entity.ActionIngest,
			resource:    descriptor("finance", entity.RoleManager),
			wantAllowed: true,
		},
		{
			name:        "manager retags own department",
			identity:    identity(entity.RoleManager, "engineering"),
			action:      entity.ActionRetag,
			resource:    descriptor("engineering", entity.RoleEmployee),
			wantAllowed: true,
		},
		{
			name:        "manager cannot retag foreign department",
			identity:    identity(entity.RoleManager, "engineering"),
			action:      entity.ActionRetag,
			resource:    descriptor("finance", entity.RoleEmployee),
			wantAllowed: false,
			wantReason:  ReasonDepartmentMismatch,
		},
		{
			name:        "employee cannot retag",
			identity:    identity(entity.RoleEmployee, "engineering"),
			action:      entity.ActionRetag,
			resource:    descriptor("engineering", entity.RoleEmployee),
			wantAllowed: false,
			wantReason:  ReasonInsufficientRole,
		},
		{
			name:        "manager deletes own department document",
			identity:    identity(entity.RoleManager, "engineering"),
			action:      entity.ActionDeleteDocument,
			resource:    descriptor("engineering", entity.RoleManager),
			wantAllowed: true,
		},
		{
			name:        "manager cannot delete executive-tagged document",
			identity:    identity(entity.RoleManager, "engineering"),
			action:      entity.ActionDeleteDocument,
			resource:    descriptor("engineering", entity.RoleExecutive),
			wantAllowed: false,
			wantReason:  ReasonInsufficientRole,
		},
		{
			name:        "manager cannot delete foreign department document",
			identity:    identity(entity.RoleManager, "engineering"),
			action:      entity.ActionDeleteDocument,
			resource:    descriptor("finance", entity.RoleEmployee),
			wantAllowed: false,
			wantReason:  ReasonDepartmentMismatch,
		},
		{
			name:        "executive deletes anything",
			identity:    identity(entity.RoleExecutive, "management"),
			action:      entity.ActionDeleteDocument,
			resource:    descriptor("finance", entity.RoleExecutive),
			wantAllowed: true,
		},
		{
			name:        "manager cannot view audit log",
			identity:    identity(entity.RoleManager, "engineering"),
			action:      entity.ActionViewAuditLog,
			wantAllowed: false,
			wantReason:  ReasonInsufficientRole,
		},
		{
			name:        "executive views audit log",
			identity:    identity(entity.RoleExecutive, "management"),
			action:      entity.ActionViewAuditLog,
			wantAllowed: true,
		},
		{
			name:        "manager cannot manage users",
			identity:    identity(entity.RoleManager, "engineering"),
			action:      entity.ActionManageUsers,
			wantAllowed: false,
			wantReason:  ReasonInsufficientRole,
		},
		{
			name:        "executive manages users",
			identity:    identity(entity.RoleExecutive, "management"),
			action:      entity.ActionManageUsers,
			wantAllowed: true,
		},
		{
			name:        "unknown action denied",
			identity:    identity(entity.RoleExecutive, "management"),
			action:      entity.Action("export_everything"),
			wantAllowed: false,
			wantReason:  ReasonInsufficientRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.identity, tt.action, tt.resource)
			if got.Allowed != tt.wantAllowed {
				t.Fatalf("Decide() allowed = %v, want %v", got.Allowed, tt.wantAllowed)
			}
			if !got.Allowed && got.Reason != tt.wantReason {
				t.Errorf("Decide() reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestVisibility(t *testing.T) {
	employee := identity(entity.RoleEmployee, "engineering")
	manager := identity(entity.RoleManager, "engineering")
	executive := identity(entity.RoleExecutive, "management")

	ownDeptEmployee := descriptor("engineering", entity.RoleEmployee)
	ownDeptManager := descriptor("engineering", entity.RoleManager)
	foreignDept := descriptor("finance", entity.RoleEmployee)
	superseded := descriptor("engineering", entity.RoleEmployee)
	superseded.Current = false

	tests := []struct {
		name string
		id   entity.Identity
		desc *entity.DocumentDescriptor
		want bool
	}{
		{"employee sees own dept employee doc", employee, ownDeptEmployee, true},
		{"employee blocked by min role", employee, ownDeptManager, false},
		{"employee blocked by department", employee, foreignDept, false},
		{"manager sees manager-tagged own dept doc", manager, ownDeptManager, true},
		{"manager blocked by department", manager, foreignDept, false},
		{"executive sees every department", executive, foreignDept, true},
		{"superseded descriptor invisible to everyone", executive, superseded, false},
		{"nil descriptor invisible", executive, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Visibility(tt.id)(tt.desc); got != tt.want {
				t.Errorf("Visibility() = %v, want %v", got, tt.want)
			}
		})
	}
}
