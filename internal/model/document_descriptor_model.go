package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentDescriptor rows are immutable once written. Retagging inserts a new
// row for the same document_id and flips `current` on the superseded row as
// the only permitted update.
type DocumentDescriptor struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Department     string    `gorm:"type:varchar(100);not null;index"`
	MinRole        int       `gorm:"not null"`
	Classification string    `gorm:"type:varchar(20);not null;default:'internal'"`
	OwnerId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Current        bool      `gorm:"not null;default:true;index"`
	IngestedAt     time.Time `gorm:"default:now();not null"`
}

func (DocumentDescriptor) TableName() string {
	return "document_descriptors"
}
