package mapper

import (
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) DescriptorToEntity(d *model.DocumentDescriptor) (*entity.DocumentDescriptor, error) {
	if d == nil {
		return nil, nil
	}

	minRole := entity.Role(d.MinRole)
	if !minRole.Valid() {
		// A descriptor with an out-of-range minimum role would make the
		// visibility predicate ambiguous; reject it at the boundary.
		return nil, entity.ErrInvalidMinRole
	}

	return &entity.DocumentDescriptor{
		Id:             d.Id,
		DocumentId:     d.DocumentId,
		Title:          d.Title,
		Department:     d.Department,
		MinRole:        minRole,
		Classification: entity.Classification(d.Classification),
		OwnerId:        d.OwnerId,
		Current:        d.Current,
		IngestedAt:     d.IngestedAt,
	}, nil
}

func (m *DocumentMapper) DescriptorToModel(d *entity.DocumentDescriptor) *model.DocumentDescriptor {
	if d == nil {
		return nil
	}

	return &model.DocumentDescriptor{
		Id:             d.Id,
		DocumentId:     d.DocumentId,
		Title:          d.Title,
		Department:     d.Department,
		MinRole:        int(d.MinRole),
		Classification: string(d.Classification),
		OwnerId:        d.OwnerId,
		Current:        d.Current,
		IngestedAt:     d.IngestedAt,
	}
}

func (m *DocumentMapper) ChunkToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	return &entity.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		ChunkIndex: c.ChunkIndex,
		Text:       c.Text,
		Embedding:  c.Embedding.Slice(),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentMapper) ChunkToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	return &model.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		ChunkIndex: c.ChunkIndex,
		Text:       c.Text,
		Embedding:  pgvector.NewVector(c.Embedding),
		CreatedAt:  c.CreatedAt,
	}
}
