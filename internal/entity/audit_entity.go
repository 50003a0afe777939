package entity

import (
	"time"

	"github.com/google/uuid"
)

// Action is the closed set of operations the decision engine rules on.
type Action string

const (
	ActionIngest         Action = "ingest"
	ActionRetag          Action = "retag"
	ActionSearch         Action = "search"
	ActionViewAuditLog   Action = "view_audit_log"
	ActionManageUsers    Action = "manage_users"
	ActionDeleteDocument Action = "delete_document"
	ActionLogin          Action = "login"
)

type Outcome string

const (
	OutcomeAllowed Outcome = "allowed"
	OutcomeDenied  Outcome = "denied"
)

// AccessDecision is one append-only audit record. Rows are never updated or
// deleted; the audit trail's integrity depends on that.
type AccessDecision struct {
	Id         uuid.UUID
	SubjectId  uuid.UUID
	Role       Role
	Action     Action
	ResourceId *uuid.UUID
	Outcome    Outcome
	Reason     string
	Details    map[string]interface{}
	CreatedAt  time.Time
}
