package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/middleware"
	"github.com/lalith-99/worktrack/internal/models"
	"github.com/lalith-99/worktrack/internal/views"
)

// JobHandler serves jobs and everything hanging off them: the sub-topic
// table, board and chart views and the job detail activity.
//
// Why no repository field, unlike the other handlers' ancestors?
//   - Jobs live in the session's workspace, which WorkspaceMiddleware has
//     already put in the gin context. Every method reads it from there.
type JobHandler struct{}

func NewJobHandler() *JobHandler {
	return &JobHandler{}
}

// createJobRequest is the body of POST /v1/jobs.
//
// Why a separate struct and not models.Job?
//   - The id is assigned by the store; clients never choose it.
//   - Status and priority may be omitted and default to "Belum dimulai"
//     and "Sedang".
//
// Name, worker and both dates are mandatory, like the add-job form. Dates
// need an explicit IsZero check: `binding:"required"` cannot see inside a
// zero struct.
type createJobRequest struct {
	Name       string             `json:"name" binding:"required"`
	WorkerName string             `json:"worker_name" binding:"required"`
	Status     models.JobStatus   `json:"status"`
	Priority   models.JobPriority `json:"priority"`
	Progress   int                `json:"progress" binding:"min=0,max=100"`
	Document   string             `json:"document"`
	StartDate  models.Date        `json:"start_date"`
	EndDate    models.Date        `json:"end_date"`
	models.SubTopicRef
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

type statusRequest struct {
	Status models.JobStatus `json:"status" binding:"required"`
}

// Create handles POST /v1/jobs
func (h *JobHandler) Create(c *gin.Context) {
	// Step 1: Parse and validate the body.
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.WorkerName = strings.TrimSpace(req.WorkerName)
	if req.Name == "" || req.WorkerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and worker_name must not be blank"})
		return
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}
	if req.SubTopicRef.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team_id, topic_id and sub_topic_id are required"})
		return
	}
	if req.Status == "" {
		req.Status = models.StatusNotStarted
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	if !req.Priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
		return
	}

	// Step 2: The store accepts any ref. Refuse one that points nowhere so
	// the API never creates an orphan.
	ws := middleware.GetWorkspace(c)
	if _, _, _, ok := ws.Teams.Locate(req.SubTopicRef); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sub-topic not found"})
		return
	}

	// Step 3: Store it. AddJob assigns the id and clamps progress.
	job := ws.Jobs.AddJob(models.Job{
		Name:        req.Name,
		WorkerName:  req.WorkerName,
		Status:      req.Status,
		Priority:    req.Priority,
		Progress:    req.Progress,
		Document:    req.Document,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		SubTopicRef: req.SubTopicRef,
	})
	c.JSON(http.StatusCreated, job)
}

// Get handles GET /v1/jobs/:jobID
func (h *JobHandler) Get(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	job, ok := ws.Jobs.Job(c.Param("jobID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// validatePatch applies the create rules to the fields a patch sets.
func validatePatch(patch *models.JobPatch) string {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return "name must not be blank"
		}
		patch.Name = &name
	}
	if patch.WorkerName != nil {
		worker := strings.TrimSpace(*patch.WorkerName)
		if worker == "" {
			return "worker_name must not be blank"
		}
		patch.WorkerName = &worker
	}
	if (patch.StartDate != nil && patch.StartDate.IsZero()) || (patch.EndDate != nil && patch.EndDate.IsZero()) {
		return "start_date and end_date must not be empty"
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return "invalid status"
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return "invalid priority"
	}
	return ""
}

func movesJob(patch models.JobPatch) bool {
	return patch.TeamID != nil || patch.TopicID != nil || patch.SubTopicID != nil
}

// Update handles PATCH /v1/jobs/:jobID
func (h *JobHandler) Update(c *gin.Context) {
	var patch models.JobPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := validatePatch(&patch); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	ws := middleware.GetWorkspace(c)
	jobID := c.Param("jobID")

	// Moving a job must land it under a live sub-topic, same as Create.
	if movesJob(patch) {
		current, ok := ws.Jobs.Job(jobID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		patch.Apply(&current)
		if _, _, _, ok := ws.Teams.Locate(current.SubTopicRef); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "sub-topic not found"})
			return
		}
	}

	job, ok := ws.Jobs.UpdateJob(jobID, patch)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateStatus handles PUT /v1/jobs/:jobID/status, the kanban card move.
// Any status can follow any other.
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	ws := middleware.GetWorkspace(c)
	job, ok := ws.Jobs.UpdateJob(c.Param("jobID"), models.JobPatch{Status: &req.Status})
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /v1/jobs/:jobID
func (h *JobHandler) Delete(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	if len(ws.RemoveJobs(c.Param("jobID"))) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete handles POST /v1/jobs/bulk-delete. Unknown ids are skipped; the
// response lists the ids that were removed.
func (h *JobHandler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws := middleware.GetWorkspace(c)
	removed := ws.RemoveJobs(req.IDs...)
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Orphans handles GET /v1/jobs/orphans
func (h *JobHandler) Orphans(c *gin.Context) {
	ws := middleware.GetWorkspace(c)
	c.JSON(http.StatusOK, ws.OrphanedJobs())
}

// visibleJobs resolves the sub-topic in the path. It writes a 404 and
// returns false when the sub-topic does not exist.
func visibleJobs(c *gin.Context) ([]models.Job, bool) {
	ws := middleware.GetWorkspace(c)
	jobs, ok := ws.VisibleJobs(subTopicRef(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sub-topic not found"})
		return nil, false
	}
	return jobs, true
}

// Table handles GET .../subtopics/:subTopicID/jobs?page=
func (h *JobHandler) Table(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'page' parameter"})
			return
		}
		page = n
	}

	jobs, ok := visibleJobs(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, views.Table(jobs, page))
}

// Board handles GET .../subtopics/:subTopicID/board
func (h *JobHandler) Board(c *gin.Context) {
	jobs, ok := visibleJobs(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, views.Board(jobs))
}

// Chart handles GET .../subtopics/:subTopicID/chart. With ?status= it also
// returns the drill-down list of that slice.
func (h *JobHandler) Chart(c *gin.Context) {
	status := models.JobStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	jobs, ok := visibleJobs(c)
	if !ok {
		return
	}

	resp := gin.H{
		"total":  len(jobs),
		"slices": views.Distribution(jobs),
	}
	if status != "" {
		resp["status"] = status
		resp["jobs"] = views.WithStatus(jobs, status)
	}
	c.JSON(http.StatusOK, resp)
}
