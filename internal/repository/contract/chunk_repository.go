package contract

import (
	"context"

	"docvault-rag-be/internal/entity"

	"github.com/google/uuid"
)

// ChunkRepository is the access-filtered vector index. SearchVisible must
// restrict candidates to documents the identity may read BEFORE truncating to
// the limit: implementations either push the visibility predicate into the
// similarity query or over-fetch and re-filter with a growing factor. Results
// are ordered by descending similarity, ties broken by chunk id ascending.
type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	SearchVisible(ctx context.Context, embedding []float32, limit int, identity entity.Identity) ([]*entity.ScoredChunk, error)
}
