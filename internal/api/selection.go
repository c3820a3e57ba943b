package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/middleware"
	"github.com/lalith-99/worktrack/internal/models"
)

type selectRequest struct {
	models.SubTopicRef
	SelectedJobID string `json:"selected_job_id"`
}

// GetSelection handles GET /v1/selection. The body is null when nothing is
// selected.
func (h *HierarchyHandler) GetSelection(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	c.JSON(http.StatusOK, ws.Teams.Selected())
}

// Select handles PUT /v1/selection. The cursor copies the current names of
// the target, so it must exist.
func (h *HierarchyHandler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws := middleware.GetWorkspace(c)
	if req.SelectedJobID != "" {
		job, ok := ws.Jobs.Job(req.SelectedJobID)
		if !ok || job.SubTopicRef != req.SubTopicRef {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found in sub-topic"})
			return
		}
	}

	sel, ok := ws.Navigate(req.SubTopicRef, req.SelectedJobID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sub-topic not found"})
		return
	}
	c.JSON(http.StatusOK, sel)
}

// ClearSelection handles DELETE /v1/selection
func (h *HierarchyHandler) ClearSelection(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	ws.Teams.SetSelected(nil)
	c.Status(http.StatusNoContent)
}
