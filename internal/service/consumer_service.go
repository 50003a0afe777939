package service

import (
	"context"
	"encoding/json"
	"time"

	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/pkg/logger"
	"docvault-rag-be/internal/repository/unitofwork"
	"docvault-rag-be/internal/websocket"
	"docvault-rag-be/pkg/events"
	pkgNats "docvault-rag-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the internal audit bus: it persists search
// decisions (the one action audited asynchronously), pushes every decision to
// connected audit stream clients, and fans out to NATS for external sinks.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	hub            *websocket.Hub
	eventPublisher *pkgNats.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	hub *websocket.Hub,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		hub:            hub,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AuditEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal audit event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed messages never become valid on retry
		return
	}

	if !payload.Recorded {
		if err := cs.persist(ctx, &payload); err != nil {
			cs.logger.Error("ConsumerService", "Failed to persist audit event", map[string]interface{}{"error": err.Error(), "decision_id": payload.Id})
			msg.Nack()
			return
		}
	}

	if cs.hub != nil {
		cs.hub.Broadcast(msg.Payload)
	}

	if cs.eventPublisher != nil {
		event := events.BaseEvent{
			Type: payload.Action,
			Data: map[string]interface{}{
				"id":          payload.Id.String(),
				"subject_id":  payload.SubjectId.String(),
				"role":        payload.Role,
				"action":      payload.Action,
				"resource_id": payload.ResourceId,
				"outcome":     payload.Outcome,
				"reason":      payload.Reason,
				"details":     payload.Details,
				"created_at":  payload.CreatedAt.Format(time.RFC3339),
			},
			OccurredAt: payload.CreatedAt,
		}
		pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := cs.eventPublisher.Publish(pubCtx, event); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to publish audit event to NATS", map[string]interface{}{"error": err.Error()})
		}
		cancel()
	}

	msg.Ack()
}

func (cs *consumerService) persist(ctx context.Context, payload *dto.AuditEventMessage) error {
	role, err := entity.ParseRole(payload.Role)
	if err != nil {
		// Denied logins for unknown accounts carry an empty identity.
		role = 0
	}

	decision := &entity.AccessDecision{
		Id:         payload.Id,
		SubjectId:  payload.SubjectId,
		Role:       role,
		Action:     entity.Action(payload.Action),
		ResourceId: payload.ResourceId,
		Outcome:    entity.Outcome(payload.Outcome),
		Reason:     payload.Reason,
		Details:    payload.Details,
		CreatedAt:  payload.CreatedAt,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.AuditRepository().Create(ctx, decision); err != nil {
		return err
	}
	return uow.Commit()
}
