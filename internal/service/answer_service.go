package service

import (
	"context"
	"fmt"
	"strings"

	"docvault-rag-be/internal/apperror"
	"docvault-rag-be/internal/authz"
	"docvault-rag-be/internal/constant"
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/repository/memory"
	"docvault-rag-be/pkg/llm"
	"docvault-rag-be/pkg/store"

	"github.com/google/uuid"
)

type IAnswerService interface {
	Ask(ctx context.Context, identity entity.Identity, req *dto.AskRequest) (*dto.AskResponse, error)
}

type answerService struct {
	searchService ISearchService
	llmProvider   llm.LLMProvider
	sessionRepo   *memory.SessionRepository
	auditService  IAuditService
}

func NewAnswerService(
	searchService ISearchService,
	llmProvider llm.LLMProvider,
	sessionRepo *memory.SessionRepository,
	auditService IAuditService,
) IAnswerService {
	return &answerService{
		searchService: searchService,
		llmProvider:   llmProvider,
		sessionRepo:   sessionRepo,
		auditService:  auditService,
	}
}

// Ask answers a question over the caller's visible documents. Every turn
// re-runs the filtered retrieval under the caller's identity; session state
// only carries conversational history, never cached access.
func (s *answerService) Ask(ctx context.Context, identity entity.Identity, req *dto.AskRequest) (*dto.AskResponse, error) {
	decision := authz.Decide(identity, entity.ActionSearch, nil)
	if !decision.Allowed {
		record := NewAccessDecision(identity, entity.ActionSearch, nil, decision, map[string]interface{}{
			"query": req.Query,
			"mode":  "ask",
		})
		s.auditService.Publish(record, false)
		return nil, apperror.PermissionDenied(string(decision.Reason))
	}

	session := s.loadSession(identity, req.SessionId)

	results, err := s.searchService.Retrieve(ctx, identity, req.Query, constant.AskTopK)
	if err != nil {
		return nil, err
	}

	record := NewAccessDecision(identity, entity.ActionSearch, nil, decision, map[string]interface{}{
		"query":        req.Query,
		"result_count": len(results),
		"mode":         "ask",
		"session_id":   session.ID,
	})
	s.auditService.Publish(record, false)

	answer := constant.NoAccessibleContextAnswer
	sources := []dto.AskSourceDTO{}

	if len(results) > 0 {
		blocks := make([]string, 0, len(results))
		for _, r := range results {
			title := ""
			if r.Descriptor != nil {
				title = r.Descriptor.Title
			}
			blocks = append(blocks, fmt.Sprintf("[%s]\n%s", title, r.Chunk.Text))
		}
		prompt := fmt.Sprintf(constant.AnswerPrompt, strings.Join(blocks, "\n\n---\n\n"), req.Query)

		generated, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
		if err != nil {
			return nil, err
		}
		answer = generated
		sources = documentRefs(results)
	}

	session.LastQuery = req.Query
	session.History = append(session.History, store.Exchange{
		Question: req.Query,
		Answer:   answer,
		Sources:  sessionSources(sources),
	})
	s.sessionRepo.Save(session)

	return &dto.AskResponse{
		Answer:    answer,
		Sources:   sources,
		SessionId: session.ID,
	}, nil
}

// loadSession resolves or creates the conversation session. A session id
// belonging to another user is ignored rather than hijacked.
func (s *answerService) loadSession(identity entity.Identity, sessionId string) *store.Session {
	if sessionId != "" {
		if existing, found := s.sessionRepo.Get(sessionId); found && existing.UserID == identity.SubjectId.String() {
			return existing
		}
	}
	return &store.Session{
		ID:     uuid.NewString(),
		UserID: identity.SubjectId.String(),
	}
}

func sessionSources(sources []dto.AskSourceDTO) []store.SourceRef {
	refs := make([]store.SourceRef, 0, len(sources))
	for _, src := range sources {
		refs = append(refs, store.SourceRef{
			DocumentID: src.DocumentId.String(),
			Title:      src.Title,
		})
	}
	return refs
}
