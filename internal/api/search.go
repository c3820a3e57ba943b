package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/middleware"
	"github.com/lalith-99/worktrack/internal/search"
	"go.uber.org/zap"
)

type SearchHandler struct {
	logger *zap.Logger
}

func NewSearchHandler(logger *zap.Logger) *SearchHandler {
	return &SearchHandler{logger: logger}
}

// Search handles GET /v1/search?q=. A blank query returns [].
func (h *SearchHandler) Search(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	raw, err := search.MarshalResults(ws.Search(c.Query("q")))
	if err != nil {
		h.logger.Error("failed to encode search results", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
