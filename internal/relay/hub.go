package relay

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

const TypeBookingChanged = "booking_changed"

// Message tells connected calendars that a day has to be refetched.
type Message struct {
	Type        string `json:"type"`
	Entity      string `json:"entity"`
	Action      string `json:"action"`
	ID          string `json:"id,omitempty"`
	WorkspaceID uint   `json:"workspace_id"`
	Date        string `json:"date,omitempty"`
}

func BookingChanged(workspaceID uint, action, id, date string) Message {
	return Message{
		Type:        TypeBookingChanged,
		Entity:      "booking",
		Action:      action,
		ID:          id,
		WorkspaceID: workspaceID,
		Date:        date,
	}
}

// Hub keeps the connected websocket clients and fans messages out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes c and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends msg to clients watching msg.WorkspaceID and to clients
// without a workspace filter.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("marshal broadcast", zap.Error(err))
		return
	}

	h.fanOut(data, func(c *Client) bool {
		return c.workspaceID == 0 || c.workspaceID == msg.WorkspaceID
	})
}

// Relay forwards a raw webhook payload. Payloads without a chat id reach
// every client; otherwise only clients with no chat filter or the same chat.
func (h *Hub) Relay(chatID string, payload []byte) {
	h.fanOut(payload, func(c *Client) bool {
		return chatID == "" || c.chatID == "" || c.chatID == chatID
	})
}

func (h *Hub) fanOut(data []byte, match func(*Client) bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for c := range h.clients {
		if !match(c) {
			continue
		}
		select {
		case c.send <- data:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.log.Warn("relay buffer full, message dropped", zap.Int("clients", dropped))
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
