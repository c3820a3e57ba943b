package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/middleware"
	"github.com/lalith-99/worktrack/internal/models"
)

type InboxHandler struct{}

func NewInboxHandler() *InboxHandler {
	return &InboxHandler{}
}

// createMessageRequest is the body of POST /v1/inbox. Sender defaults to the
// session's name and Timestamp to now.
type createMessageRequest struct {
	Sender    string              `json:"sender"`
	Subject   string              `json:"subject" binding:"required"`
	Preview   string              `json:"preview"`
	Timestamp time.Time           `json:"timestamp"`
	Mentions  []string            `json:"mentions"`
	JobID     string              `json:"job_id"`
	Link      *models.MessageLink `json:"link"`
}

type inboxResponse struct {
	Messages    []models.InboxMessage `json:"messages"`
	UnreadCount int                   `json:"unread_count"`
}

// List handles GET /v1/inbox, newest first.
func (h *InboxHandler) List(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	c.JSON(http.StatusOK, inboxResponse{
		Messages:    ws.Inbox.Messages(),
		UnreadCount: ws.Inbox.UnreadCount(),
	})
}

// Create handles POST /v1/inbox
func (h *InboxHandler) Create(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Sender == "" {
		req.Sender = middleware.GetName(c)
	}

	ws := middleware.GetWorkspace(c)
	msg := ws.Inbox.AddMessage(models.InboxMessage{
		Sender:    req.Sender,
		Subject:   req.Subject,
		Preview:   req.Preview,
		Timestamp: req.Timestamp,
		Mentions:  req.Mentions,
		JobID:     req.JobID,
		Link:      req.Link,
	})
	c.JSON(http.StatusCreated, msg)
}

// MarkRead handles POST /v1/inbox/:messageID/read. Marking twice is fine.
func (h *InboxHandler) MarkRead(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	if !ws.Inbox.MarkAsRead(c.Param("messageID")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": ws.Inbox.UnreadCount()})
}

// Open handles POST /v1/inbox/:messageID/open: mark read and follow the
// message's link. selection is null for messages without a link.
func (h *InboxHandler) Open(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	sel, ok := ws.OpenMessage(c.Param("messageID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"selection":    sel,
		"unread_count": ws.Inbox.UnreadCount(),
	})
}
