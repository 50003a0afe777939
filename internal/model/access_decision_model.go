package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AccessDecision is append-only: the repository exposes no update or delete
// for this table.
type AccessDecision struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubjectId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role       string         `gorm:"type:varchar(50);not null"`
	Action     string         `gorm:"type:varchar(50);not null;index"`
	ResourceId *uuid.UUID     `gorm:"type:uuid;index"`
	Outcome    string         `gorm:"type:varchar(20);not null;index"`
	Reason     string         `gorm:"type:varchar(100)"`
	Details    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"default:now();not null;index"`
}

func (AccessDecision) TableName() string {
	return "access_decisions"
}
