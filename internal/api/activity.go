package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/middleware"
	"github.com/lalith-99/worktrack/internal/models"
)

// Documents and comments hang off the job detail page. Only file names and
// sizes are recorded; uploads never reach the server.

type addDocumentRequest struct {
	Name      string `json:"name" binding:"required"`
	SizeBytes int64  `json:"size_bytes" binding:"min=0"`
}

type attachmentRequest struct {
	Name      string `json:"name" binding:"required"`
	SizeBytes int64  `json:"size_bytes" binding:"min=0"`
}

// addCommentRequest is the body of POST /v1/jobs/:jobID/comments.
//
// Why is text not `binding:"required"`?
//   - A comment may be just a file. It needs text or an attachment, and
//     AddComment checks that after binding.
type addCommentRequest struct {
	Text       string             `json:"text"`
	Attachment *attachmentRequest `json:"attachment"`
}

// Activity handles GET /v1/jobs/:jobID/activity
func (h *JobHandler) Activity(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	jobID := c.Param("jobID")
	if _, ok := ws.Jobs.Job(jobID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, ws.Activity.Activity(jobID))
}

// AddDocument handles POST /v1/jobs/:jobID/documents
func (h *JobHandler) AddDocument(c *gin.Context) {
	var req addDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws := middleware.GetWorkspace(c)
	jobID := c.Param("jobID")
	if _, ok := ws.Jobs.Job(jobID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusCreated, ws.Activity.AddDocument(jobID, req.Name, req.SizeBytes))
}

// RemoveDocument handles DELETE /v1/jobs/:jobID/documents/:docID
func (h *JobHandler) RemoveDocument(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	if !ws.Activity.RemoveDocument(c.Param("jobID"), c.Param("docID")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// AddComment handles POST /v1/jobs/:jobID/comments. The author is the
// session's name; @mentions in the text land in the inbox.
func (h *JobHandler) AddComment(c *gin.Context) {
	// Step 1: Parse. Either text or an attachment must be present.
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" && req.Attachment == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment needs text or an attachment"})
		return
	}

	// Step 2: Store the comment and fan out its @mentions.
	var att *models.Attachment
	if req.Attachment != nil {
		att = &models.Attachment{Name: req.Attachment.Name, SizeBytes: req.Attachment.SizeBytes}
	}

	ws := middleware.GetWorkspace(c)
	comment, ok := ws.AddComment(c.Param("jobID"), middleware.GetName(c), req.Text, att)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}
