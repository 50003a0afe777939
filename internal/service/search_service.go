package service

import (
	"context"
	"time"

	"docvault-rag-be/internal/apperror"
	"docvault-rag-be/internal/authz"
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/unitofwork"
	"docvault-rag-be/pkg/embedding"

	"github.com/google/uuid"
)

type ISearchService interface {
	Search(ctx context.Context, identity entity.Identity, req *dto.SearchRequest) (*dto.SearchResponse, error)

	// Retrieve is the raw filtered retrieval used by Search and Ask. It does
	// not audit; callers own that.
	Retrieve(ctx context.Context, identity entity.Identity, query string, topK int) ([]*entity.ScoredChunk, error)
}

// SearchConfig bounds the retrieval path.
type SearchConfig struct {
	DefaultTopK  int
	QueryTimeout time.Duration
}

type searchService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	auditService      IAuditService
	cfg               SearchConfig
}

func NewSearchService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	auditService IAuditService,
	cfg SearchConfig,
) ISearchService {
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = 10
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = 5 * time.Second
	}
	return &searchService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		auditService:      auditService,
		cfg:               cfg,
	}
}

func (s *searchService) Retrieve(ctx context.Context, identity entity.Identity, query string, topK int) ([]*entity.ScoredChunk, error) {
	if topK <= 0 {
		topK = s.cfg.DefaultTopK
	}

	resp, err := s.embeddingProvider.Generate(query, "retrieval_query")
	if err != nil {
		return nil, apperror.IndexUnavailable(err)
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	results, err := uow.ChunkRepository().SearchVisible(queryCtx, resp.Embedding.Values, topK, identity)
	if err != nil {
		return nil, apperror.IndexUnavailable(err)
	}

	// The index already filtered, but the service re-checks every hit against
	// the visibility predicate. A chunk without a readable descriptor never
	// leaves this function, whatever the index returned.
	visible := authz.Visibility(identity)
	out := make([]*entity.ScoredChunk, 0, len(results))
	for _, r := range results {
		if !visible(r.Descriptor) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *searchService) Search(ctx context.Context, identity entity.Identity, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	decision := authz.Decide(identity, entity.ActionSearch, nil)
	if !decision.Allowed {
		record := NewAccessDecision(identity, entity.ActionSearch, nil, decision, map[string]interface{}{"query": req.Query})
		s.auditService.Publish(record, false)
		return nil, apperror.PermissionDenied(string(decision.Reason))
	}

	results, err := s.Retrieve(ctx, identity, req.Query, req.TopK)
	if err != nil {
		record := NewAccessDecision(identity, entity.ActionSearch, nil, decision, map[string]interface{}{
			"query": req.Query,
			"error": err.Error(),
		})
		s.auditService.Publish(record, false)
		return nil, err
	}

	record := NewAccessDecision(identity, entity.ActionSearch, nil, decision, map[string]interface{}{
		"query":        req.Query,
		"result_count": len(results),
	})
	s.auditService.Publish(record, false)

	resp := &dto.SearchResponse{
		Results: make([]dto.SearchResultDTO, 0, len(results)),
		Count:   len(results),
	}
	for _, r := range results {
		resp.Results = append(resp.Results, scoredChunkDTO(r))
	}
	return resp, nil
}

func scoredChunkDTO(r *entity.ScoredChunk) dto.SearchResultDTO {
	out := dto.SearchResultDTO{
		ChunkId:    r.Chunk.Id,
		DocumentId: r.Chunk.DocumentId,
		Text:       r.Chunk.Text,
		Score:      r.Similarity,
	}
	if r.Descriptor != nil {
		out.Title = r.Descriptor.Title
		out.Department = r.Descriptor.Department
		out.Classification = string(r.Descriptor.Classification)
	}
	return out
}

// documentRefs deduplicates result chunks into their source documents,
// preserving rank order.
func documentRefs(results []*entity.ScoredChunk) []dto.AskSourceDTO {
	seen := map[uuid.UUID]bool{}
	refs := make([]dto.AskSourceDTO, 0, len(results))
	for _, r := range results {
		if r.Descriptor == nil || seen[r.Chunk.DocumentId] {
			continue
		}
		seen[r.Chunk.DocumentId] = true
		refs = append(refs, dto.AskSourceDTO{
			DocumentId: r.Chunk.DocumentId,
			Title:      r.Descriptor.Title,
		})
	}
	return refs
}
