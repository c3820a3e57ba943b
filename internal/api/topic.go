package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/middleware"
	"github.com/lalith-99/worktrack/internal/models"
)

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// bindName binds a nameRequest and trims it. It writes a 400 and returns
// false for a missing or blank name.
func bindName(c *gin.Context) (string, bool) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
		return "", false
	}
	return name, true
}

// trimPatchName trims an optional name in place. Nil is fine; blank is not.
func trimPatchName(name **string) bool {
	if *name == nil {
		return true
	}
	trimmed := strings.TrimSpace(**name)
	if trimmed == "" {
		return false
	}
	*name = &trimmed
	return true
}

// subTopicRef reads the three hierarchy ids from the path.
func subTopicRef(c *gin.Context) models.SubTopicRef {
	return models.SubTopicRef{
		TeamID:     c.Param("teamID"),
		TopicID:    c.Param("topicID"),
		SubTopicID: c.Param("subTopicID"),
	}
}

// CreateTopic handles POST /v1/teams/:teamID/topics
func (h *HierarchyHandler) CreateTopic(c *gin.Context) {
	name, ok := bindName(c)
	if !ok {
		return
	}

	ws := middleware.GetWorkspace(c)
	topic, ok := ws.Teams.AddTopic(c.Param("teamID"), name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}
	c.JSON(http.StatusCreated, topic)
}

// UpdateTopic handles PATCH /v1/teams/:teamID/topics/:topicID
func (h *HierarchyHandler) UpdateTopic(c *gin.Context) {
	name, ok := bindName(c)
	if !ok {
		return
	}

	ws := middleware.GetWorkspace(c)
	teamID, topicID := c.Param("teamID"), c.Param("topicID")
	if !ws.Teams.UpdateTopic(teamID, topicID, name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
		return
	}

	team, _ := ws.Teams.Team(teamID)
	for _, topic := range team.Topics {
		if topic.ID == topicID {
			c.JSON(http.StatusOK, topic)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
}

// DeleteTopic handles DELETE /v1/teams/:teamID/topics/:topicID
func (h *HierarchyHandler) DeleteTopic(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	if !ws.RemoveTopic(c.Param("teamID"), c.Param("topicID")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateSubTopic handles POST /v1/teams/:teamID/topics/:topicID/subtopics
func (h *HierarchyHandler) CreateSubTopic(c *gin.Context) {
	name, ok := bindName(c)
	if !ok {
		return
	}

	ws := middleware.GetWorkspace(c)
	st, ok := ws.Teams.AddSubTopic(c.Param("teamID"), c.Param("topicID"), name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
		return
	}
	c.JSON(http.StatusCreated, st)
}

// UpdateSubTopic handles PATCH .../subtopics/:subTopicID
func (h *HierarchyHandler) UpdateSubTopic(c *gin.Context) {
	var patch models.SubTopicPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !trimPatchName(&patch.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
		return
	}

	ws := middleware.GetWorkspace(c)
	ref := subTopicRef(c)
	if !ws.Teams.UpdateSubTopic(ref.TeamID, ref.TopicID, ref.SubTopicID, patch) {
		c.JSON(http.StatusNotFound, gin.H{"error": "sub-topic not found"})
		return
	}

	_, _, st, _ := ws.Teams.Locate(ref)
	c.JSON(http.StatusOK, st)
}

// DeleteSubTopic handles DELETE .../subtopics/:subTopicID
func (h *HierarchyHandler) DeleteSubTopic(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	ref := subTopicRef(c)
	if !ws.RemoveSubTopic(ref.TeamID, ref.TopicID, ref.SubTopicID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "sub-topic not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
