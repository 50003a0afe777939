package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"docvault-rag-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const auditStreamChannel = "audit_stream"

// Hub fans audit events out to connected stream clients. Only Executives
// reach the hub; the handler enforces that before upgrading.
type Hub struct {
	// UserID -> connections (one viewer may watch from several devices)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis relays events between instances
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Audit stream client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes one serialized audit event to every connected client.
// With Redis configured the event goes through the relay channel so sibling
// instances deliver it too; each instance, this one included, delivers on
// receipt.
func (h *Hub) Broadcast(data []byte) {
	if h.rdb == nil {
		h.deliverLocal(data)
		return
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"message": json.RawMessage(data),
	})
	if err := h.rdb.Publish(context.Background(), auditStreamChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Relay publish failed, delivering locally only", map[string]interface{}{"error": err.Error()})
		h.deliverLocal(data)
	}
}

func (h *Hub) deliverLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// Slow consumer: drop the connection, not the event stream.
				close(client.Send)
				go func(c *Client) { h.unregister <- c }(client)
			}
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, auditStreamChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Bad relay payload", map[string]interface{}{"error": err.Error()})
			continue
		}
		h.deliverLocal(payload.Message)
	}
}
