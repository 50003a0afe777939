package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"docvault-rag-be/internal/authz"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ChunkRepository is an in-memory vector index used in tests and in the
// no-database mode. Unlike the Postgres implementation it cannot push the
// visibility predicate into the store, so SearchVisible over-fetches with a
// doubling factor and post-filters, never truncating before filtering.
type ChunkRepository struct {
	mu        sync.RWMutex
	chunks    []*entity.DocumentChunk
	documents *DocumentRepository

	Overfetch  int // initial over-fetch multiplier, defaults to 3
	MaxRetries int // doubling rounds before falling back to the full pool
}

func NewChunkRepository(documents *DocumentRepository) *ChunkRepository {
	return &ChunkRepository{
		documents:  documents,
		Overfetch:  3,
		MaxRetries: 4,
	}
}

func (r *ChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		cp := *c
		r.chunks = append(r.chunks, &cp)
	}
	return nil
}

func (r *ChunkRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.chunks[:0]
	for _, c := range r.chunks {
		if c.DocumentId != documentId {
			kept = append(kept, c)
		}
	}
	r.chunks = kept
	return nil
}

func (r *ChunkRepository) SearchVisible(ctx context.Context, embedding []float32, limit int, identity entity.Identity) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := r.rankAll(embedding)
	visible := authz.Visibility(identity)

	fetch := limit * r.Overfetch
	for attempt := 0; ; attempt++ {
		if attempt >= r.MaxRetries || fetch > len(ranked) {
			fetch = len(ranked)
		}

		candidates := ranked[:fetch]
		permitted := make([]*entity.ScoredChunk, 0, limit)
		for _, sc := range candidates {
			if visible(sc.Descriptor) {
				permitted = append(permitted, sc)
				if len(permitted) == limit {
					return permitted, nil
				}
			}
		}

		// Pool exhausted: a short result set is a valid outcome.
		if fetch == len(ranked) {
			return permitted, nil
		}
		fetch *= 2
	}
}

// rankAll scores every chunk against the query, descending similarity with
// chunk id ascending as the tie-break, and attaches the current descriptor.
func (r *ChunkRepository) rankAll(embedding []float32) []*entity.ScoredChunk {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scored := make([]*entity.ScoredChunk, 0, len(r.chunks))
	for _, c := range r.chunks {
		desc := r.documents.currentDescriptor(c.DocumentId)
		if desc == nil {
			continue
		}
		scored = append(scored, &entity.ScoredChunk{
			Chunk:      c,
			Descriptor: desc,
			Similarity: cosineSimilarity(embedding, c.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return strings.Compare(scored[i].Chunk.Id.String(), scored[j].Chunk.Id.String()) < 0
	})
	return scored
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var _ contract.ChunkRepository = (*ChunkRepository)(nil)
