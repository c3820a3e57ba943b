package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/auth"
	"github.com/lalith-99/worktrack/internal/middleware"
	"github.com/lalith-99/worktrack/internal/workspace"
	"go.uber.org/zap"
)

// Workspaces creates and resolves workspaces. *workspace.Registry
// implements it.
type Workspaces interface {
	Create(ctx context.Context, owner string) (*workspace.Workspace, error)
	Get(ctx context.Context, id string) (*workspace.Workspace, error)
}

// SessionHandler opens sessions, the only public endpoint besides health.
// There is no password: a name is enough to get a workspace.
type SessionHandler struct {
	workspaces Workspaces
	jwtSecret  string
	ttl        time.Duration
	logger     *zap.Logger
}

func NewSessionHandler(workspaces Workspaces, jwtSecret string, ttl time.Duration, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		workspaces: workspaces,
		jwtSecret:  jwtSecret,
		ttl:        ttl,
		logger:     logger,
	}
}

// createSessionRequest is the body of POST /v1/session.
//
// Why is workspace_id optional?
//   - Without it the caller gets a fresh workspace, seeded with the demo
//     team when that is enabled.
//   - With it the caller joins someone else's workspace and sees their
//     changes live over /v1/events.
type createSessionRequest struct {
	Name        string `json:"name" binding:"required"`
	WorkspaceID string `json:"workspace_id"`
}

type sessionResponse struct {
	Token       string `json:"token"`
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
}

// Create handles POST /v1/session
func (h *SessionHandler) Create(c *gin.Context) {
	// Step 1: Parse the body.
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Step 2: Join the named workspace or open a new one.
	status := http.StatusCreated
	var (
		ws  *workspace.Workspace
		err error
	)
	if req.WorkspaceID != "" {
		ws, err = h.workspaces.Get(c.Request.Context(), req.WorkspaceID)
		if err == nil && ws == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
			return
		}
		status = http.StatusOK
	} else {
		ws, err = h.workspaces.Create(c.Request.Context(), req.Name)
	}
	if err != nil {
		h.logger.Error("failed to open workspace", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
		return
	}

	// Step 3: Issue a token scoped to that workspace.
	token, err := auth.GenerateToken(ws.ID, req.Name, h.jwtSecret, h.ttl)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
		return
	}

	c.JSON(status, sessionResponse{Token: token, WorkspaceID: ws.ID, Name: req.Name})
}

// Get handles GET /v1/session
func (h *SessionHandler) Get(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	c.JSON(http.StatusOK, gin.H{
		"workspace_id": ws.ID,
		"name":         middleware.GetName(c),
		"owner":        ws.Owner,
		"unread_count": ws.Inbox.UnreadCount(),
		"selection":    ws.Teams.Selected(),
	})
}
