package dto

import (
	"time"

	"github.com/google/uuid"
)

type AuditQueryRequest struct {
	SubjectId string `query:"subject_id"`
	Action    string `query:"action"`
	Outcome   string `query:"outcome" validate:"omitempty,oneof=allowed denied"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset    int    `query:"offset" validate:"omitempty,min=0"`
}

type AuditEntryDTO struct {
	Id         uuid.UUID              `json:"id"`
	SubjectId  uuid.UUID              `json:"subject_id"`
	Role       string                 `json:"role"`
	Action     string                 `json:"action"`
	ResourceId *uuid.UUID             `json:"resource_id,omitempty"`
	Outcome    string                 `json:"outcome"`
	Reason     string                 `json:"reason,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type AuditQueryResponse struct {
	Entries []AuditEntryDTO `json:"entries"`
	Count   int             `json:"count"`
}
