package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByDocumentID filters descriptor or chunk rows by their parent document.
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// CurrentOnly restricts descriptors to the published generation.
type CurrentOnly struct{}

func (s CurrentOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("current = ?", true)
}

// ByDepartment filters by department.
type ByDepartment struct {
	Department string
}

func (s ByDepartment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("department = ?", s.Department)
}

// ByOwner filters descriptors by the ingesting subject.
type ByOwner struct {
	OwnerID uuid.UUID
}

func (s ByOwner) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}
