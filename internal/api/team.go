package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/middleware"
	"github.com/lalith-99/worktrack/internal/models"
)

// HierarchyHandler serves teams, topics and sub-topics of the session's
// workspace, plus the navigation cursor over them.
type HierarchyHandler struct{}

func NewHierarchyHandler() *HierarchyHandler {
	return &HierarchyHandler{}
}

// createTeamRequest mirrors the create-team dialog: a team name and,
// optionally, the first topic and the first sub-topic inside it.
type createTeamRequest struct {
	Name         string `json:"name" binding:"required"`
	TopicName    string `json:"topic_name"`
	SubTopicName string `json:"sub_topic_name"`
}

// ListTeams handles GET /v1/teams
func (h *HierarchyHandler) ListTeams(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	c.JSON(http.StatusOK, ws.Teams.Teams())
}

// CreateTeam handles POST /v1/teams
func (h *HierarchyHandler) CreateTeam(c *gin.Context) {
	// Step 1: Parse. Names are trimmed; a blank team name is refused and
	// blank topic names count as absent.
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.TopicName = strings.TrimSpace(req.TopicName)
	req.SubTopicName = strings.TrimSpace(req.SubTopicName)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
		return
	}
	if req.SubTopicName != "" && req.TopicName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sub_topic_name requires topic_name"})
		return
	}

	// Step 2: Build the optional first topic and sub-topic.
	var topics []models.Topic
	if req.TopicName != "" {
		topic := models.Topic{Name: req.TopicName, SubTopics: []models.SubTopic{}}
		// Sub-topics made here start with an empty description; only
		// AddSubTopic fills in the placeholder.
		if req.SubTopicName != "" {
			topic.SubTopics = append(topic.SubTopics, models.SubTopic{Name: req.SubTopicName})
		}
		topics = append(topics, topic)
	}

	// Step 3: Store. AddTeam assigns ids and selects the team.
	ws := middleware.GetWorkspace(c)
	team := ws.Teams.AddTeam(req.Name, topics)
	c.JSON(http.StatusCreated, team)
}

// UpdateTeam handles PATCH /v1/teams/:teamID
func (h *HierarchyHandler) UpdateTeam(c *gin.Context) {
	var patch models.TeamPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !trimPatchName(&patch.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
		return
	}

	ws := middleware.GetWorkspace(c)
	teamID := c.Param("teamID")
	if !ws.Teams.UpdateTeam(teamID, patch) {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	team, _ := ws.Teams.Team(teamID)
	c.JSON(http.StatusOK, team)
}

// DeleteTeam handles DELETE /v1/teams/:teamID
func (h *HierarchyHandler) DeleteTeam(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	if !ws.RemoveTeam(c.Param("teamID")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
