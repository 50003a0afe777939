package memory

import (
	"context"
	"fmt"
	"testing"

	"docvault-rag-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDocument(t *testing.T, docs *DocumentRepository, chunks *ChunkRepository, dept string, minRole entity.Role, embedding []float32) uuid.UUID {
	t.Helper()
	documentId := uuid.New()
	err := docs.CreateDescriptor(context.Background(), &entity.DocumentDescriptor{
		Id:         uuid.New(),
		DocumentId: documentId,
		Title:      fmt.Sprintf("doc-%s", documentId),
		Department: dept,
		MinRole:    minRole,
		Current:    true,
	})
	require.NoError(t, err)

	err = chunks.CreateBulk(context.Background(), []*entity.DocumentChunk{{
		Id:         uuid.New(),
		DocumentId: documentId,
		Text:       "chunk",
		Embedding:  embedding,
	}})
	require.NoError(t, err)
	return documentId
}

func TestSearchVisibleNeverLeaks(t *testing.T) {
	docs := NewDocumentRepository()
	chunks := NewChunkRepository(docs)
	employee := entity.Identity{SubjectId: uuid.New(), Role: entity.RoleEmployee, Department: "engineering"}

	// The best-scoring documents are all out of reach for the employee, so a
	// filter-after-truncation index would return nothing.
	for i := 0; i < 20; i++ {
		seedDocument(t, docs, chunks, "engineering", entity.RoleExecutive, []float32{1, 0})
	}
	visibleId := seedDocument(t, docs, chunks, "engineering", entity.RoleEmployee, []float32{0.7, 0.7})

	results, err := chunks.SearchVisible(context.Background(), []float32{1, 0}, 5, employee)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, visibleId, results[0].Chunk.DocumentId)
}

func TestSearchVisibleFillsLimitPastRestrictedRanks(t *testing.T) {
	docs := NewDocumentRepository()
	chunks := NewChunkRepository(docs)
	employee := entity.Identity{SubjectId: uuid.New(), Role: entity.RoleEmployee, Department: "engineering"}

	// 30 restricted documents outrank 5 visible ones; the initial over-fetch
	// window (limit*3) holds only restricted hits, forcing the doubling
	// retries to reach the visible tail.
	for i := 0; i < 30; i++ {
		seedDocument(t, docs, chunks, "finance", entity.RoleEmployee, []float32{1, 0})
	}
	for i := 0; i < 5; i++ {
		seedDocument(t, docs, chunks, "engineering", entity.RoleEmployee, []float32{0.5, 0.5})
	}

	results, err := chunks.SearchVisible(context.Background(), []float32{1, 0}, 5, employee)
	require.NoError(t, err)
	assert.Len(t, results, 5)
	for _, r := range results {
		assert.Equal(t, "engineering", r.Descriptor.Department)
	}
}

func TestSearchVisibleShortResultWhenPoolExhausted(t *testing.T) {
	docs := NewDocumentRepository()
	chunks := NewChunkRepository(docs)
	employee := entity.Identity{SubjectId: uuid.New(), Role: entity.RoleEmployee, Department: "engineering"}

	seedDocument(t, docs, chunks, "engineering", entity.RoleEmployee, []float32{1, 0})
	seedDocument(t, docs, chunks, "finance", entity.RoleEmployee, []float32{1, 0})

	results, err := chunks.SearchVisible(context.Background(), []float32{1, 0}, 10, employee)
	require.NoError(t, err)
	// Fewer visible documents than requested is a valid short result.
	assert.Len(t, results, 1)
}

func TestSearchVisibleOrdering(t *testing.T) {
	docs := NewDocumentRepository()
	chunks := NewChunkRepository(docs)
	executive := entity.Identity{SubjectId: uuid.New(), Role: entity.RoleExecutive, Department: "management"}

	seedDocument(t, docs, chunks, "engineering", entity.RoleEmployee, []float32{0.2, 0.8})
	seedDocument(t, docs, chunks, "engineering", entity.RoleEmployee, []float32{1, 0})
	seedDocument(t, docs, chunks, "engineering", entity.RoleEmployee, []float32{0.6, 0.4})

	results, err := chunks.SearchVisible(context.Background(), []float32{1, 0}, 3, executive)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity, "results must be ordered by descending similarity")
	}
}

func TestSearchVisibleTieBreakByChunkId(t *testing.T) {
	docs := NewDocumentRepository()
	chunks := NewChunkRepository(docs)
	executive := entity.Identity{SubjectId: uuid.New(), Role: entity.RoleExecutive, Department: "management"}

	// Identical embeddings give identical scores; ordering must then be
	// deterministic by chunk id.
	for i := 0; i < 6; i++ {
		seedDocument(t, docs, chunks, "engineering", entity.RoleEmployee, []float32{1, 0})
	}

	first, err := chunks.SearchVisible(context.Background(), []float32{1, 0}, 6, executive)
	require.NoError(t, err)
	second, err := chunks.SearchVisible(context.Background(), []float32{1, 0}, 6, executive)
	require.NoError(t, err)

	require.Len(t, first, 6)
	for i := range first {
		assert.Equal(t, first[i].Chunk.Id, second[i].Chunk.Id)
	}
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].Chunk.Id.String(), first[i].Chunk.Id.String())
	}
}

func TestSearchVisibleRespectsRetagGeneration(t *testing.T) {
	docs := NewDocumentRepository()
	chunks := NewChunkRepository(docs)
	ctx := context.Background()
	employee := entity.Identity{SubjectId: uuid.New(), Role: entity.RoleEmployee, Department: "engineering"}

	documentId := seedDocument(t, docs, chunks, "engineering", entity.RoleEmployee, []float32{1, 0})

	results, err := chunks.SearchVisible(ctx, []float32{1, 0}, 5, employee)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Retag to Manager-only: a new descriptor generation supersedes the old
	// one, and the employee loses the document immediately.
	require.NoError(t, docs.SupersedeDescriptor(ctx, documentId))
	require.NoError(t, docs.CreateDescriptor(ctx, &entity.DocumentDescriptor{
		Id:         uuid.New(),
		DocumentId: documentId,
		Department: "engineering",
		MinRole:    entity.RoleManager,
		Current:    true,
	}))

	results, err = chunks.SearchVisible(ctx, []float32{1, 0}, 5, employee)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchVisibleCanceledContext(t *testing.T) {
	docs := NewDocumentRepository()
	chunks := NewChunkRepository(docs)
	executive := entity.Identity{SubjectId: uuid.New(), Role: entity.RoleExecutive, Department: "management"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chunks.SearchVisible(ctx, []float32{1, 0}, 5, executive)
	assert.Error(t, err)
}
