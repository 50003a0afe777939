package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidMinRole marks a stored descriptor whose minimum role is outside
// the known tiers.
var ErrInvalidMinRole = errors.New("descriptor minimum role is not a known role")

type Classification string

const (
	ClassificationPublic       Classification = "public"
	ClassificationInternal     Classification = "internal"
	ClassificationConfidential Classification = "confidential"
)

// ValidClassification reports whether c is in the closed classification set.
func ValidClassification(c Classification) bool {
	switch c {
	case ClassificationPublic, ClassificationInternal, ClassificationConfidential:
		return true
	}
	return false
}

// DocumentDescriptor is the access-control metadata attached to a document at
// ingestion. Descriptors are immutable: retagging issues a new descriptor row
// for the same document id, it never mutates an existing one.
type DocumentDescriptor struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	Title          string
	Department     string
	MinRole        Role
	Classification Classification
	OwnerId        uuid.UUID
	IngestedAt     time.Time
	Current        bool
}

// DocumentChunk is one embedded text span of a document. It back-references
// its descriptor by document id only.
type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	Text       string
	Embedding  []float32
	CreatedAt  time.Time
}

// ScoredChunk pairs a chunk with its similarity score and the descriptor it
// was ranked under, so callers can re-verify visibility before returning it.
type ScoredChunk struct {
	Chunk      *DocumentChunk
	Descriptor *DocumentDescriptor
	Similarity float64
}
