package mapper

import (
	"testing"
	"time"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorRejectsUnknownMinRole(t *testing.T) {
	m := NewDocumentMapper()

	_, err := m.DescriptorToEntity(&model.DocumentDescriptor{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		Department: "engineering",
		MinRole:    42,
		Current:    true,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidMinRole)
}

func TestDescriptorRoundTrip(t *testing.T) {
	m := NewDocumentMapper()

	src := &entity.DocumentDescriptor{
		Id:             uuid.New(),
		DocumentId:     uuid.New(),
		Title:          "Handbook",
		Department:     "engineering",
		MinRole:        entity.RoleManager,
		Classification: entity.ClassificationInternal,
		OwnerId:        uuid.New(),
		IngestedAt:     time.Now().Truncate(time.Second),
		Current:        true,
	}

	back, err := m.DescriptorToEntity(m.DescriptorToModel(src))
	require.NoError(t, err)
	assert.Equal(t, src, back)
}

func TestChunkEmbeddingRoundTrip(t *testing.T) {
	m := NewDocumentMapper()

	src := &entity.DocumentChunk{
		Id:         uuid.New(),
		DocumentId: uuid.New(),
		ChunkIndex: 3,
		Text:       "a chunk",
		Embedding:  []float32{0.1, 0.2, 0.3},
		CreatedAt:  time.Now().Truncate(time.Second),
	}

	back := m.ChunkToEntity(m.ChunkToModel(src))
	assert.Equal(t, src, back)
}
