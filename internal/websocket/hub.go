package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"fluentko-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel is the Redis channel every instance listens on.
const ClusterChannel = "cluster_events"

type Hub struct {
	// student id -> open connections (one per tab/device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// nil when Redis is unavailable; delivery then stays local
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

type clusterMessage struct {
	TargetStudentID string          `json:"target_student_id"`
	Message         json.RawMessage `json:"message"`
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.StudentID] = append(h.clients[client.StudentID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"student_id": client.StudentID})

		case client := <-h.unregister:
			h.remove(client)

		case <-h.done:
			return
		}
	}
}

// Stop ends Run. Open clients are left to their own pumps.
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[client.StudentID]
	for i, c := range clients {
		if c == client {
			h.clients[client.StudentID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.StudentID]) == 0 {
		delete(h.clients, client.StudentID)
		h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"student_id": client.StudentID})
	}
}

// ConnectionCount reports local connections for a student.
func (h *Hub) ConnectionCount(studentID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[studentID])
}

// Send delivers a typed message to every open connection of a student. With
// Redis the message goes through the cluster channel, which this instance
// also consumes, so it is delivered exactly once per connection.
func (h *Hub) Send(studentID uuid.UUID, msgType string, data interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"type": msgType,
		"data": data,
	})
	if err != nil {
		return err
	}

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{TargetStudentID: studentID.String(), Message: body})
		err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err()
		if err == nil {
			return nil
		}
		h.logger.Warn("Hub", "Redis publish failed, delivering locally", map[string]interface{}{"error": err.Error()})
	}

	h.deliverLocal(studentID, body)
	return nil
}

// deliverLocal holds the read lock for the whole loop: remove closes Send
// under the write lock, so no send can hit a closed channel.
func (h *Hub) deliverLocal(studentID uuid.UUID, body []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[studentID] {
		select {
		case client.Send <- body:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{"student_id": studentID})
			go h.Unregister(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-h.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			studentID, err := uuid.Parse(payload.TargetStudentID)
			if err != nil {
				continue
			}
			h.deliverLocal(studentID, payload.Message)
		}
	}
}
