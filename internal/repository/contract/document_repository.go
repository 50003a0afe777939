package contract

import (
	"context"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	// CreateDescriptor inserts a new descriptor generation. It never updates
	// an existing row.
	CreateDescriptor(ctx context.Context, d *entity.DocumentDescriptor) error
	// SupersedeDescriptor flips `current` off on the published descriptor of a
	// document, making room for a retagged generation.
	SupersedeDescriptor(ctx context.Context, documentId uuid.UUID) error
	FindCurrentDescriptor(ctx context.Context, documentId uuid.UUID) (*entity.DocumentDescriptor, error)
	FindDescriptors(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentDescriptor, error)
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
}
