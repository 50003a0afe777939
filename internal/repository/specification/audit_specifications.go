package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySubject filters audit records by the acting subject.
type BySubject struct {
	SubjectID uuid.UUID
}

func (s BySubject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject_id = ?", s.SubjectID)
}

// ByAction filters audit records by action name.
type ByAction struct {
	Action string
}

func (s ByAction) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("action = ?", s.Action)
}

// ByOutcome filters audit records by allowed/denied outcome.
type ByOutcome struct {
	Outcome string
}

func (s ByOutcome) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("outcome = ?", s.Outcome)
}

// Since restricts to records created at or after the given time.
type Since struct {
	Time time.Time
}

func (s Since) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Time)
}
