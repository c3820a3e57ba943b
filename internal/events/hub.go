// Package events delivers workspace change events to WebSocket clients,
// either straight from this process or through Redis pub/sub so several
// server instances can share sessions.
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lalith-99/worktrack/internal/models"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Hub tracks the WebSocket clients of every workspace.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*client]struct{}
	closed  bool
	logger  *zap.Logger
}

type client struct {
	conn        *websocket.Conn
	workspaceID string
	send        chan []byte
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		logger:  logger,
	}
}

// Serve streams the events of one workspace to conn until the peer goes
// away. It blocks; call it from the handler that upgraded the connection.
func (h *Hub) Serve(conn *websocket.Conn, workspaceID string) {
	c := &client{
		conn:        conn,
		workspaceID: workspaceID,
		send:        make(chan []byte, sendBuffer),
	}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// Deliver sends ev to every client of its workspace. A client whose buffer is
// full is disconnected rather than blocking the others.
func (h *Hub) Deliver(ev models.Event) {
	raw, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("failed to encode event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[ev.WorkspaceID] {
		select {
		case c.send <- raw:
		default:
			h.logger.Warn("dropping slow websocket client", zap.String("workspace_id", c.workspaceID))
			h.removeLocked(c)
		}
	}
}

// Clients reports how many clients are connected to a workspace.
func (h *Hub) Clients(workspaceID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[workspaceID])
}

// Close disconnects every client with a close frame and refuses new ones.
// Call it after the HTTP server has stopped accepting requests.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, set := range h.clients {
		for c := range set {
			h.removeLocked(c)
		}
	}
	h.logger.Info("event hub closed")
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	set, ok := h.clients[c.workspaceID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.workspaceID] = set
	}
	set[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked is idempotent: send is closed only once.
func (h *Hub) removeLocked(c *client) {
	set := h.clients[c.workspaceID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.workspaceID)
	}
	close(c.send)
}

// readPump only exists to process pongs and notice the peer closing.
// Clients never send anything meaningful.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
