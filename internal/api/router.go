package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/events"
	"github.com/lalith-99/worktrack/internal/middleware"
	"github.com/lalith-99/worktrack/internal/observ"
	"go.uber.org/zap"
)

// RouterConfig carries what the HTTP layer depends on. HealthChecks are
// optional dependency checks (database, redis) reported by /v1/health.
type RouterConfig struct {
	Workspaces   Workspaces
	Hub          *events.Hub
	JWTSecret    string
	SessionTTL   time.Duration
	Logger       *zap.Logger
	HealthChecks map[string]func(context.Context) error
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	srv := gin.New()
	srv.Use(observ.GinLogger(cfg.Logger), gin.Recovery())

	srv.GET("/v1/health", health(cfg.HealthChecks))

	sessions := NewSessionHandler(cfg.Workspaces, cfg.JWTSecret, cfg.SessionTTL, cfg.Logger)
	srv.POST("/v1/session", sessions.Create)

	v1 := srv.Group("/v1")
	v1.Use(
		middleware.SessionMiddleware(cfg.JWTSecret),
		middleware.WorkspaceMiddleware(cfg.Workspaces, cfg.Logger),
	)

	v1.GET("/session", sessions.Get)

	hierarchy := NewHierarchyHandler()
	jobs := NewJobHandler()

	v1.GET("/teams", hierarchy.ListTeams)
	v1.POST("/teams", hierarchy.CreateTeam)
	v1.PATCH("/teams/:teamID", hierarchy.UpdateTeam)
	v1.DELETE("/teams/:teamID", hierarchy.DeleteTeam)

	v1.POST("/teams/:teamID/topics", hierarchy.CreateTopic)
	v1.PATCH("/teams/:teamID/topics/:topicID", hierarchy.UpdateTopic)
	v1.DELETE("/teams/:teamID/topics/:topicID", hierarchy.DeleteTopic)

	subTopics := v1.Group("/teams/:teamID/topics/:topicID/subtopics")
	subTopics.POST("", hierarchy.CreateSubTopic)
	subTopics.PATCH("/:subTopicID", hierarchy.UpdateSubTopic)
	subTopics.DELETE("/:subTopicID", hierarchy.DeleteSubTopic)
	subTopics.GET("/:subTopicID/jobs", jobs.Table)
	subTopics.GET("/:subTopicID/board", jobs.Board)
	subTopics.GET("/:subTopicID/chart", jobs.Chart)

	v1.GET("/selection", hierarchy.GetSelection)
	v1.PUT("/selection", hierarchy.Select)
	v1.DELETE("/selection", hierarchy.ClearSelection)

	v1.POST("/jobs", jobs.Create)
	v1.POST("/jobs/bulk-delete", jobs.BulkDelete)
	v1.GET("/jobs/orphans", jobs.Orphans)
	v1.GET("/jobs/:jobID", jobs.Get)
	v1.PATCH("/jobs/:jobID", jobs.Update)
	v1.DELETE("/jobs/:jobID", jobs.Delete)
	v1.PUT("/jobs/:jobID/status", jobs.UpdateStatus)
	v1.GET("/jobs/:jobID/activity", jobs.Activity)
	v1.POST("/jobs/:jobID/documents", jobs.AddDocument)
	v1.DELETE("/jobs/:jobID/documents/:docID", jobs.RemoveDocument)
	v1.POST("/jobs/:jobID/comments", jobs.AddComment)

	inbox := NewInboxHandler()
	v1.GET("/inbox", inbox.List)
	v1.POST("/inbox", inbox.Create)
	v1.POST("/inbox/:messageID/read", inbox.MarkRead)
	v1.POST("/inbox/:messageID/open", inbox.Open)

	v1.GET("/search", NewSearchHandler(cfg.Logger).Search)

	if cfg.Hub != nil {
		v1.GET("/events", NewEventsHandler(cfg.Hub, cfg.Logger).Stream)
	}

	return srv
}

// health is public so load balancers can reach it without a session.
func health(checks map[string]func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		deps := gin.H{}
		for name, check := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			err := check(ctx)
			cancel()
			if err != nil {
				deps[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		body := gin.H{"status": "ok", "dependencies": deps}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		c.JSON(status, body)
	}
}
