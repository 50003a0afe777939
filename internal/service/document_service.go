package service

import (
	"context"
	"strings"
	"time"

	"docvault-rag-be/internal/apperror"
	"docvault-rag-be/internal/authz"
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/pkg/embedding"
	"docvault-rag-be/pkg/extract"
	"docvault-rag-be/pkg/utils"

	"docvault-rag-be/internal/repository/specification"
	"docvault-rag-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

type IDocumentService interface {
	Ingest(ctx context.Context, identity entity.Identity, req *dto.IngestRequest) (*dto.IngestResponse, error)
	Retag(ctx context.Context, identity entity.Identity, documentId uuid.UUID, req *dto.RetagRequest) (*dto.DescriptorDTO, error)
	Delete(ctx context.Context, identity entity.Identity, documentId uuid.UUID) error
	List(ctx context.Context, identity entity.Identity) ([]dto.DescriptorDTO, error)
}

type documentService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	extractor         extract.Extractor
	auditService      IAuditService
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	extractor extract.Extractor,
	auditService IAuditService,
) IDocumentService {
	return &documentService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		extractor:         extractor,
		auditService:      auditService,
	}
}

// denyMutation durably records a denied mutating request before surfacing the
// permission error. If the audit sink is down the audit error wins, so the
// caller never learns the outcome of an unrecorded check.
func (s *documentService) denyMutation(ctx context.Context, identity entity.Identity, action entity.Action, resourceId *uuid.UUID, decision authz.Decision) error {
	record := NewAccessDecision(identity, action, resourceId, decision, nil)
	if err := s.auditService.RecordNow(ctx, record); err != nil {
		return err
	}
	s.auditService.Publish(record, true)
	return apperror.PermissionDenied(string(decision.Reason))
}

func (s *documentService) Ingest(ctx context.Context, identity entity.Identity, req *dto.IngestRequest) (*dto.IngestResponse, error) {
	department := req.Department
	if department == "" {
		department = identity.Department
	}

	minRole := entity.RoleEmployee
	if req.MinRole != "" {
		parsed, err := entity.ParseRole(req.MinRole)
		if err != nil {
			return nil, apperror.ValidationError("min_role")
		}
		minRole = parsed
	}

	classification := entity.Classification(req.Classification)
	if classification == "" {
		classification = entity.ClassificationInternal
	}
	if !entity.ValidClassification(classification) {
		return nil, apperror.ValidationError("classification")
	}

	descriptor := &entity.DocumentDescriptor{
		Id:             uuid.New(),
		DocumentId:     uuid.New(),
		Title:          req.Title,
		Department:     department,
		MinRole:        minRole,
		Classification: classification,
		OwnerId:        identity.SubjectId,
		IngestedAt:     time.Now(),
		Current:        true,
	}

	decision := authz.Decide(identity, entity.ActionIngest, descriptor)
	if !decision.Allowed {
		return nil, s.denyMutation(ctx, identity, entity.ActionIngest, nil, decision)
	}

	spans, err := s.extractor.Extract(ctx, strings.NewReader(req.Content))
	if err != nil {
		return nil, apperror.ValidationError("content")
	}
	parts := make([]string, 0, len(spans))
	for _, span := range spans {
		parts = append(parts, span.Text)
	}
	pieces := utils.SplitText(strings.Join(parts, "\n\n"), chunkSize, chunkOverlap)
	if len(pieces) == 0 {
		return nil, apperror.ValidationError("content")
	}

	chunks := make([]*entity.DocumentChunk, 0, len(pieces))
	for i, text := range pieces {
		resp, err := s.embeddingProvider.Generate(text, "retrieval_document")
		if err != nil {
			return nil, apperror.IndexUnavailable(err)
		}
		chunks = append(chunks, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: descriptor.DocumentId,
			ChunkIndex: i,
			Text:       text,
			Embedding:  resp.Embedding.Values,
			CreatedAt:  time.Now(),
		})
	}

	record := NewAccessDecision(identity, entity.ActionIngest, &descriptor.DocumentId, decision, map[string]interface{}{
		"title":       req.Title,
		"department":  department,
		"min_role":    minRole.String(),
		"chunk_count": len(chunks),
	})

	// Chunks land first, descriptor last: the descriptor row is what makes
	// the document visible, and nothing is visible until the commit.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChunkRepository().CreateBulk(ctx, chunks); err != nil {
		return nil, err
	}
	if err := uow.DocumentRepository().CreateDescriptor(ctx, descriptor); err != nil {
		return nil, err
	}
	if err := s.auditService.Record(ctx, uow, record); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.auditService.Publish(record, true)

	return &dto.IngestResponse{
		DocumentId:   descriptor.DocumentId,
		DescriptorId: descriptor.Id,
		ChunkCount:   len(chunks),
	}, nil
}

func (s *documentService) Retag(ctx context.Context, identity entity.Identity, documentId uuid.UUID, req *dto.RetagRequest) (*dto.DescriptorDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.DocumentRepository().FindCurrentDescriptor(ctx, documentId)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.DescriptorNotFound(documentId.String())
	}

	decision := authz.Decide(identity, entity.ActionRetag, existing)
	if !decision.Allowed {
		return nil, s.denyMutation(ctx, identity, entity.ActionRetag, &documentId, decision)
	}

	next := *existing
	next.Id = uuid.New()
	if req.Department != "" {
		// Moving a document into another department takes Executive rank,
		// same as ingesting into one.
		if req.Department != existing.Department && identity.Role != entity.RoleExecutive {
			return nil, s.denyMutation(ctx, identity, entity.ActionRetag, &documentId, authz.Deny(authz.ReasonInsufficientRole))
		}
		next.Department = req.Department
	}
	if req.MinRole != "" {
		parsed, err := entity.ParseRole(req.MinRole)
		if err != nil {
			return nil, apperror.ValidationError("min_role")
		}
		next.MinRole = parsed
	}
	if req.Classification != "" {
		c := entity.Classification(req.Classification)
		if !entity.ValidClassification(c) {
			return nil, apperror.ValidationError("classification")
		}
		next.Classification = c
	}

	noop := next.Department == existing.Department &&
		next.MinRole == existing.MinRole &&
		next.Classification == existing.Classification

	record := NewAccessDecision(identity, entity.ActionRetag, &documentId, decision, map[string]interface{}{
		"old_department": existing.Department,
		"new_department": next.Department,
		"old_min_role":   existing.MinRole.String(),
		"new_min_role":   next.MinRole.String(),
		"noop":           noop,
	})

	if noop {
		// Nothing changes in the catalog but the attempt is still recorded.
		if err := s.auditService.RecordNow(ctx, record); err != nil {
			return nil, err
		}
		s.auditService.Publish(record, true)
		return descriptorDTO(existing), nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().SupersedeDescriptor(ctx, documentId); err != nil {
		return nil, err
	}
	if err := uow.DocumentRepository().CreateDescriptor(ctx, &next); err != nil {
		return nil, err
	}
	if err := s.auditService.Record(ctx, uow, record); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.auditService.Publish(record, true)

	return descriptorDTO(&next), nil
}

func (s *documentService) Delete(ctx context.Context, identity entity.Identity, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.DocumentRepository().FindCurrentDescriptor(ctx, documentId)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.DescriptorNotFound(documentId.String())
	}

	decision := authz.Decide(identity, entity.ActionDeleteDocument, existing)
	if !decision.Allowed {
		return s.denyMutation(ctx, identity, entity.ActionDeleteDocument, &documentId, decision)
	}

	record := NewAccessDecision(identity, entity.ActionDeleteDocument, &documentId, decision, map[string]interface{}{
		"title":      existing.Title,
		"department": existing.Department,
	})

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChunkRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := uow.DocumentRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return err
	}
	if err := s.auditService.Record(ctx, uow, record); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.auditService.Publish(record, true)
	return nil
}

// List returns the current descriptors the caller is allowed to read,
// filtered through the same visibility predicate search uses.
func (s *documentService) List(ctx context.Context, identity entity.Identity) ([]dto.DescriptorDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	descriptors, err := uow.DocumentRepository().FindDescriptors(ctx, specification.CurrentOnly{})
	if err != nil {
		return nil, err
	}

	visible := authz.Visibility(identity)
	out := make([]dto.DescriptorDTO, 0, len(descriptors))
	for _, d := range descriptors {
		if !visible(d) {
			continue
		}
		out = append(out, *descriptorDTO(d))
	}
	return out, nil
}

func descriptorDTO(d *entity.DocumentDescriptor) *dto.DescriptorDTO {
	return &dto.DescriptorDTO{
		DocumentId:     d.DocumentId,
		Title:          d.Title,
		Department:     d.Department,
		MinRole:        d.MinRole.String(),
		Classification: string(d.Classification),
		OwnerId:        d.OwnerId,
		IngestedAt:     d.IngestedAt.Format(time.RFC3339),
	}
}
