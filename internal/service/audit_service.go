package service

import (
	"context"
	"encoding/json"
	"time"

	"docvault-rag-be/internal/apperror"
	"docvault-rag-be/internal/authz"
	"docvault-rag-be/internal/constant"
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/pkg/logger"
	"docvault-rag-be/internal/repository/specification"
	"docvault-rag-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IAuditService is the single entry point to the audit trail. Record and
// RecordNow are durable: the caller's operation must fail if they do. Publish
// is fire-and-forget and only acceptable for read-path decisions.
type IAuditService interface {
	// Record appends the decision through the caller's open unit of work, so
	// the audit row commits or rolls back together with the domain write.
	Record(ctx context.Context, uow unitofwork.UnitOfWork, decision *entity.AccessDecision) error

	// RecordNow appends the decision in its own transaction. Used for denied
	// mutating requests, which have no domain transaction of their own.
	RecordNow(ctx context.Context, decision *entity.AccessDecision) error

	// Publish puts the decision on the internal bus. The consumer persists it
	// when recorded is false and fans it out to external sinks either way.
	Publish(decision *entity.AccessDecision, recorded bool)

	Query(ctx context.Context, identity entity.Identity, req *dto.AuditQueryRequest) (*dto.AuditQueryResponse, error)
}

type auditService struct {
	uowFactory unitofwork.RepositoryFactory
	pubSub     *gochannel.GoChannel
	logger     logger.ILogger
}

func NewAuditService(uowFactory unitofwork.RepositoryFactory, pubSub *gochannel.GoChannel, log logger.ILogger) IAuditService {
	return &auditService{
		uowFactory: uowFactory,
		pubSub:     pubSub,
		logger:     log,
	}
}

// NewAccessDecision builds the audit record for one evaluated request.
func NewAccessDecision(identity entity.Identity, action entity.Action, resourceId *uuid.UUID, decision authz.Decision, details map[string]interface{}) *entity.AccessDecision {
	outcome := entity.OutcomeAllowed
	reason := ""
	if !decision.Allowed {
		outcome = entity.OutcomeDenied
		reason = string(decision.Reason)
	}
	return &entity.AccessDecision{
		Id:         uuid.New(),
		SubjectId:  identity.SubjectId,
		Role:       identity.Role,
		Action:     action,
		ResourceId: resourceId,
		Outcome:    outcome,
		Reason:     reason,
		Details:    details,
		CreatedAt:  time.Now(),
	}
}

func (s *auditService) Record(ctx context.Context, uow unitofwork.UnitOfWork, decision *entity.AccessDecision) error {
	if err := uow.AuditRepository().Create(ctx, decision); err != nil {
		return apperror.AuditUnavailable(err)
	}
	return nil
}

func (s *auditService) RecordNow(ctx context.Context, decision *entity.AccessDecision) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.AuditUnavailable(err)
	}
	defer uow.Rollback()

	if err := uow.AuditRepository().Create(ctx, decision); err != nil {
		return apperror.AuditUnavailable(err)
	}
	if err := uow.Commit(); err != nil {
		return apperror.AuditUnavailable(err)
	}
	return nil
}

func (s *auditService) Publish(decision *entity.AccessDecision, recorded bool) {
	payload := dto.AuditEventMessage{
		Id:         decision.Id,
		SubjectId:  decision.SubjectId,
		Role:       decision.Role.String(),
		Action:     string(decision.Action),
		ResourceId: decision.ResourceId,
		Outcome:    string(decision.Outcome),
		Reason:     decision.Reason,
		Details:    decision.Details,
		CreatedAt:  decision.CreatedAt,
		Recorded:   recorded,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("AuditService", "Failed to marshal audit event", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := s.pubSub.Publish(constant.AuditTopic, msg); err != nil {
		s.logger.Error("AuditService", "Failed to publish audit event", map[string]interface{}{"error": err.Error(), "decision_id": decision.Id})
	}
}

func (s *auditService) Query(ctx context.Context, identity entity.Identity, req *dto.AuditQueryRequest) (*dto.AuditQueryResponse, error) {
	decision := authz.Decide(identity, entity.ActionViewAuditLog, nil)
	record := NewAccessDecision(identity, entity.ActionViewAuditLog, nil, decision, nil)
	if !decision.Allowed {
		if err := s.RecordNow(ctx, record); err != nil {
			return nil, err
		}
		s.Publish(record, true)
		return nil, apperror.PermissionDenied(string(decision.Reason))
	}

	specs := []specification.Specification{}
	if req.SubjectId != "" {
		subjectId, err := uuid.Parse(req.SubjectId)
		if err != nil {
			return nil, apperror.ValidationError("subject_id")
		}
		specs = append(specs, specification.BySubject{SubjectID: subjectId})
	}
	if req.Action != "" {
		specs = append(specs, specification.ByAction{Action: req.Action})
	}
	if req.Outcome != "" {
		specs = append(specs, specification.ByOutcome{Outcome: req.Outcome})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.AuditRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.AuditUnavailable(err)
	}
	count, err := uow.AuditRepository().Count(ctx, specs...)
	if err != nil {
		return nil, apperror.AuditUnavailable(err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := req.Offset
	if offset > len(entries) {
		offset = len(entries)
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}

	resp := &dto.AuditQueryResponse{
		Entries: make([]dto.AuditEntryDTO, 0, end-offset),
		Count:   int(count),
	}
	for _, e := range entries[offset:end] {
		resp.Entries = append(resp.Entries, dto.AuditEntryDTO{
			Id:         e.Id,
			SubjectId:  e.SubjectId,
			Role:       e.Role.String(),
			Action:     string(e.Action),
			ResourceId: e.ResourceId,
			Outcome:    string(e.Outcome),
			Reason:     e.Reason,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt,
		})
	}

	if err := s.RecordNow(ctx, record); err != nil {
		return nil, err
	}
	s.Publish(record, true)

	return resp, nil
}
