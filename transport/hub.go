package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yarrakiran3/polling-system-backend/models"
)

// Message is one inbound client event tagged with the connection that
// sent it. Disconnects are delivered as a synthetic message with the
// models.EventDisconnect event name, so consumers see connection churn
// on the same serialized queue as every other action.
type Message struct {
	ConnID string
	Event  string
	Data   json.RawMessage
}

// Sender is the outbound half of the transport contract.
type Sender interface {
	SendTo(connID, event string, payload any)
	Broadcast(event string, payload any)
}

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// connection wraps a websocket with a write lock; gorilla connections
// do not support concurrent writers.
type connection struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *connection) write(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(outEnvelope{Event: event, Data: payload})
}

// Hub maintains the set of live websocket connections, each addressable
// by a generated handle, and funnels every inbound frame onto a single
// channel.
type Hub struct {
	mu        sync.RWMutex
	conns     map[string]*connection
	inbound   chan Message
	done      chan struct{}
	upgrader  websocket.Upgrader
	closeOnce sync.Once
}

// NewHub creates a hub accepting websocket upgrades from the given
// origin. An empty Origin header (non-browser clients) is always
// accepted; "*" accepts everything.
func NewHub(allowedOrigin string) *Hub {
	return &Hub{
		conns:   make(map[string]*connection),
		inbound: make(chan Message, 64),
		done:    make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "*" || origin == allowedOrigin
			},
		},
	}
}

// Inbound returns the serialized stream of client events.
func (h *Hub) Inbound() <-chan Message {
	return h.inbound
}

// HandleWS upgrades the request and pumps inbound frames until the
// connection drops. It blocks for the lifetime of the connection.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	connID := uuid.New().String()
	conn := &connection{ws: ws}

	h.mu.Lock()
	h.conns[connID] = conn
	h.mu.Unlock()

	slog.Info("client connected", "conn_id", connID, "remote", r.RemoteAddr)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			slog.Warn("dropping malformed frame", "conn_id", connID, "error", err)
			continue
		}
		if env.Event == "" {
			continue
		}

		h.deliver(Message{ConnID: connID, Event: env.Event, Data: env.Data})
	}

	h.mu.Lock()
	delete(h.conns, connID)
	h.mu.Unlock()
	ws.Close()

	slog.Info("client disconnected", "conn_id", connID)
	h.deliver(Message{ConnID: connID, Event: models.EventDisconnect})
}

// deliver queues a message without blocking past shutdown.
func (h *Hub) deliver(msg Message) {
	select {
	case h.inbound <- msg:
	case <-h.done:
	}
}

// SendTo delivers one event to a single connection. Unknown handles are
// ignored; the connection may have dropped between lookup and delivery.
func (h *Hub) SendTo(connID, event string, payload any) {
	h.mu.RLock()
	conn, ok := h.conns[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if err := conn.write(event, payload); err != nil {
		slog.Warn("send failed", "conn_id", connID, "event", event, "error", err)
	}
}

// Broadcast delivers one event to every live connection.
func (h *Hub) Broadcast(event string, payload any) {
	h.mu.RLock()
	conns := make(map[string]*connection, len(h.conns))
	for id, conn := range h.conns {
		conns[id] = conn
	}
	h.mu.RUnlock()

	for id, conn := range conns {
		if err := conn.write(event, payload); err != nil {
			slog.Warn("broadcast send failed", "conn_id", id, "event", event, "error", err)
		}
	}
}

// Close drops every connection and releases any reader blocked on the
// inbound queue. Call after the HTTP server has stopped accepting
// upgrades.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	for id, conn := range h.conns {
		conn.ws.Close()
		delete(h.conns, id)
	}
	h.mu.Unlock()
}

// Done is closed when the hub shuts down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
