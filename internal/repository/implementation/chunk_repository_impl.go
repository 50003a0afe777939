package implementation

import (
	"context"

	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/mapper"
	"docvault-rag-be/internal/model"
	"docvault-rag-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ChunkToModel(c)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ChunkToEntity(m)
	}
	return nil
}

func (r *ChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("document_id = ?", documentId).
		Delete(&model.DocumentChunk{}).Error
}

// SearchVisible runs the similarity query with the visibility predicate as a
// true pre-filter: the JOIN restricts the candidate set to permitted, current
// descriptors before pgvector ranks and truncates, so an impermissible chunk
// can never displace a permitted one and the LIMIT always counts permitted
// rows. Executives skip the department clause entirely.
func (r *ChunkRepositoryImpl) SearchVisible(ctx context.Context, embedding []float32, limit int, identity entity.Identity) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type row struct {
		model.DocumentChunk
		Similarity     float64
		DescriptorId   uuid.UUID
		Title          string
		Department     string
		MinRole        int
		Classification string
		OwnerId        uuid.UUID
	}
	var rows []row

	queryVector := pgvector.NewVector(embedding)
	err := r.similarityQuery(ctx, queryVector, limit, identity).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]*entity.ScoredChunk, 0, len(rows))
	for _, rw := range rows {
		desc, err := r.mapper.DescriptorToEntity(&model.DocumentDescriptor{
			Id:             rw.DescriptorId,
			DocumentId:     rw.DocumentChunk.DocumentId,
			Title:          rw.Title,
			Department:     rw.Department,
			MinRole:        rw.MinRole,
			Classification: rw.Classification,
			OwnerId:        rw.OwnerId,
			Current:        true,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, &entity.ScoredChunk{
			Chunk:      r.mapper.ChunkToEntity(&rw.DocumentChunk),
			Descriptor: desc,
			Similarity: rw.Similarity,
		})
	}
	return results, nil
}

// similarityQuery builds the ranked statement with the visibility predicate
// ahead of ORDER BY and LIMIT. The ordering must go through clause.OrderBy:
// gorm's Order silently drops a gorm.Expr argument, which would leave the
// statement unordered. Cosine distance in pgvector is 1 - cosine_similarity.
func (r *ChunkRepositoryImpl) similarityQuery(ctx context.Context, queryVector pgvector.Vector, limit int, identity entity.Identity) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("document_chunks").
		Select(`document_chunks.*,
			1 - (document_chunks.embedding <=> ?) AS similarity,
			d.id AS descriptor_id, d.title, d.department, d.min_role, d.classification, d.owner_id`, queryVector).
		Joins("JOIN document_descriptors d ON d.document_id = document_chunks.document_id AND d.current = true").
		Where("d.min_role <= ?", int(identity.Role))

	if identity.Role != entity.RoleExecutive {
		query = query.Where("d.department = ?", identity.Department)
	}

	return query.
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "document_chunks.embedding <=> ?, document_chunks.id ASC",
			Vars: []interface{}{queryVector},
		}}).
		Limit(limit)
}
