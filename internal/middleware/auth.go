package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/auth"
	"github.com/lalith-99/worktrack/internal/workspace"
	"go.uber.org/zap"
)

// Context keys for values the middleware stores in gin.Context.
const (
	ContextKeyWorkspaceID = "workspace_id"
	ContextKeyName        = "name"
	ContextKeyWorkspace   = "workspace"
)

// WorkspaceLoader resolves a workspace id. *workspace.Registry implements it.
type WorkspaceLoader interface {
	Get(ctx context.Context, id string) (*workspace.Workspace, error)
}

// SessionMiddleware validates the session token and stores its claims.
//
// The token comes from "Authorization: Bearer <token>". Browsers cannot set
// headers on a WebSocket handshake, so a ?token= query parameter is accepted
// as well.
func SessionMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, msg := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, err := auth.ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyWorkspaceID, claims.WorkspaceID)
		c.Set(ContextKeyName, claims.Name)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if q := c.Query("token"); q != "" {
			return q, ""
		}
		return "", "missing authorization header"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", "invalid authorization format, expected: Bearer <token>"
	}
	return parts[1], ""
}

// WorkspaceMiddleware loads the session's workspace. It must run after
// SessionMiddleware. A token for a workspace that no longer exists is
// treated like an invalid token.
func WorkspaceMiddleware(loader WorkspaceLoader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetWorkspaceID(c)
		ws, err := loader.Get(c.Request.Context(), id)
		if err != nil {
			logger.Error("failed to load workspace", zap.String("workspace_id", id), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load workspace"})
			return
		}
		if ws == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(ContextKeyWorkspace, ws)
		c.Next()
	}
}

func GetWorkspaceID(c *gin.Context) string {
	return c.GetString(ContextKeyWorkspaceID)
}

func GetName(c *gin.Context) string {
	return c.GetString(ContextKeyName)
}

// GetWorkspace returns the workspace loaded by WorkspaceMiddleware, or nil.
func GetWorkspace(c *gin.Context) *workspace.Workspace {
	val, exists := c.Get(ContextKeyWorkspace)
	if !exists {
		return nil
	}
	ws, ok := val.(*workspace.Workspace)
	if !ok {
		return nil
	}
	return ws
}
