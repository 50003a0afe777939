package dto

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventMessage is the wire form of an access decision on the internal
// pub/sub bus. Recorded tells the consumer whether the row already landed in
// storage (mutating actions write synchronously inside their transaction) or
// still needs persisting (search audits are written asynchronously).
type AuditEventMessage struct {
	Id         uuid.UUID              `json:"id"`
	SubjectId  uuid.UUID              `json:"subject_id"`
	Role       string                 `json:"role"`
	Action     string                 `json:"action"`
	ResourceId *uuid.UUID             `json:"resource_id,omitempty"`
	Outcome    string                 `json:"outcome"`
	Reason     string                 `json:"reason,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	Recorded   bool                   `json:"recorded"`
}
