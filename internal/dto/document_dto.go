package dto

import "github.com/google/uuid"

type IngestRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	// Department may only differ from the issuer's own for Executives.
	Department     string `json:"department"`
	MinRole        string `json:"min_role" validate:"omitempty,oneof=Employee Manager Executive"`
	Classification string `json:"classification" validate:"omitempty,oneof=public internal confidential"`
}

type IngestResponse struct {
	DocumentId   uuid.UUID `json:"document_id"`
	DescriptorId uuid.UUID `json:"descriptor_id"`
	ChunkCount   int       `json:"chunk_count"`
}

type RetagRequest struct {
	Department     string `json:"department"`
	MinRole        string `json:"min_role" validate:"omitempty,oneof=Employee Manager Executive"`
	Classification string `json:"classification" validate:"omitempty,oneof=public internal confidential"`
}

type DescriptorDTO struct {
	DocumentId     uuid.UUID `json:"document_id"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	MinRole        string    `json:"min_role"`
	Classification string    `json:"classification"`
	OwnerId        uuid.UUID `json:"owner_id"`
	IngestedAt     string    `json:"ingested_at"`
}
