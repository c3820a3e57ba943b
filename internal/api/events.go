package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lalith-99/worktrack/internal/events"
	"github.com/lalith-99/worktrack/internal/middleware"
	"go.uber.org/zap"
)

type EventsHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewEventsHandler(hub *events.Hub, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The session token already scopes the connection to one
			// workspace; browsers on any origin may listen.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Stream handles GET /v1/events. It upgrades to a WebSocket and pushes one
// JSON event per workspace change until the client disconnects.
func (h *EventsHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Serve(conn, middleware.GetWorkspaceID(c))
}
