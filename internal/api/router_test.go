package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/worktrack/internal/models"
	"github.com/lalith-99/worktrack/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret = "test-secret"
	demoTeam   = "/v1/teams/struktur/topics/denah-pembalokan/subtopics/denah-pembesian"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
	ws     *workspace.Workspace
}

func newTestServer(t *testing.T, opts workspace.Options) *testServer {
	t.Helper()
	reg := workspace.NewRegistry(workspace.RegistryConfig{Options: opts, SeedDemo: true})
	s := &testServer{
		t: t,
		router: NewRouter(RouterConfig{
			Workspaces: reg,
			JWTSecret:  testSecret,
			SessionTTL: time.Hour,
			Logger:     zap.NewNop(),
		}),
	}

	var sess sessionResponse
	s.do(http.MethodPost, "/v1/session", gin.H{"name": "Bima"}, http.StatusCreated, &sess)
	s.token = sess.Token

	ws, err := reg.Get(context.Background(), sess.WorkspaceID)
	require.NoError(t, err)
	require.NotNil(t, ws)
	s.ws = ws
	return s
}

// do sends a request with the session token and checks the status. When out
// is non-nil the response body is decoded into it.
func (s *testServer) do(method, target string, body any, wantStatus int, out any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(s.t, wantStatus, w.Code, w.Body.String())
	if out != nil {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func (s *testServer) demoRef() models.SubTopicRef {
	return models.SubTopicRef{TeamID: "struktur", TopicID: "denah-pembalokan", SubTopicID: "denah-pembesian"}
}

func TestHealth(t *testing.T) {
	failing := map[string]func(context.Context) error{
		"database": func(context.Context) error { return errors.New("down") },
	}
	tests := []struct {
		name   string
		checks map[string]func(context.Context) error
		want   int
	}{
		{name: "no dependencies", want: http.StatusOK},
		{name: "failing dependency", checks: failing, want: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(RouterConfig{
				Workspaces:   workspace.NewRegistry(workspace.RegistryConfig{}),
				JWTSecret:    testSecret,
				SessionTTL:   time.Hour,
				Logger:       zap.NewNop(),
				HealthChecks: tt.checks,
			})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSession(t *testing.T) {
	s := newTestServer(t, workspace.Options{})

	var got map[string]any
	s.do(http.MethodGet, "/v1/session", nil, http.StatusOK, &got)
	assert.Equal(t, s.ws.ID, got["workspace_id"])
	assert.Equal(t, "Bima", got["name"])
	assert.EqualValues(t, 2, got["unread_count"])

	var joined sessionResponse
	s.do(http.MethodPost, "/v1/session", gin.H{"name": "Galang", "workspace_id": s.ws.ID}, http.StatusOK, &joined)
	assert.Equal(t, s.ws.ID, joined.WorkspaceID)

	s.do(http.MethodPost, "/v1/session", gin.H{"name": "Galang", "workspace_id": "nope"}, http.StatusNotFound, nil)
	s.do(http.MethodPost, "/v1/session", gin.H{}, http.StatusBadRequest, nil)

	s.token = ""
	s.do(http.MethodGet, "/v1/teams", nil, http.StatusUnauthorized, nil)
}

func TestHierarchyEndpoints(t *testing.T) {
	s := newTestServer(t, workspace.Options{})

	var team models.Team
	s.do(http.MethodPost, "/v1/teams", gin.H{
		"name":           "Arsitektur",
		"topic_name":     "Denah",
		"sub_topic_name": "Lantai Dasar",
	}, http.StatusCreated, &team)
	require.Len(t, team.Topics, 1)
	require.Len(t, team.Topics[0].SubTopics, 1)
	assert.NotEmpty(t, team.ID)
	assert.Empty(t, team.Topics[0].SubTopics[0].Description)

	s.do(http.MethodPost, "/v1/teams", gin.H{"name": "X", "sub_topic_name": "Y"}, http.StatusBadRequest, nil)

	var topic models.Topic
	s.do(http.MethodPost, "/v1/teams/"+team.ID+"/topics", gin.H{"name": "Tampak"}, http.StatusCreated, &topic)
	assert.Empty(t, topic.SubTopics)

	var st models.SubTopic
	s.do(http.MethodPost, "/v1/teams/"+team.ID+"/topics/"+topic.ID+"/subtopics", gin.H{"name": "Tampak Depan"}, http.StatusCreated, &st)
	assert.Equal(t, "Shopdrawing Tampak Depan Lantai 1 – Lantai Roof", st.Description)

	stPath := "/v1/teams/" + team.ID + "/topics/" + topic.ID + "/subtopics/" + st.ID
	s.do(http.MethodPatch, stPath, gin.H{"description": "Revisi"}, http.StatusOK, &st)
	assert.Equal(t, "Tampak Depan", st.Name)
	assert.Equal(t, "Revisi", st.Description)

	s.do(http.MethodPatch, "/v1/teams/"+team.ID+"/topics/"+topic.ID, gin.H{"name": "Tampak Bangunan"}, http.StatusOK, &topic)
	assert.Equal(t, "Tampak Bangunan", topic.Name)

	s.do(http.MethodPatch, "/v1/teams/"+team.ID, gin.H{"name": "Arsitek"}, http.StatusOK, &team)
	assert.Equal(t, "Arsitek", team.Name)
	assert.Len(t, team.Topics, 2)

	s.do(http.MethodDelete, stPath, nil, http.StatusNoContent, nil)
	s.do(http.MethodDelete, stPath, nil, http.StatusNotFound, nil)
	s.do(http.MethodDelete, "/v1/teams/"+team.ID, nil, http.StatusNoContent, nil)
	s.do(http.MethodDelete, "/v1/teams/"+team.ID, nil, http.StatusNotFound, nil)
	s.do(http.MethodPost, "/v1/teams/"+team.ID+"/topics", gin.H{"name": "Z"}, http.StatusNotFound, nil)

	var teams []models.Team
	s.do(http.MethodGet, "/v1/teams", nil, http.StatusOK, &teams)
	require.Len(t, teams, 1)
	assert.Equal(t, "struktur", teams[0].ID)
}

func TestJobEndpoints(t *testing.T) {
	s := newTestServer(t, workspace.Options{})
	ref := s.demoRef()

	var job models.Job
	s.do(http.MethodPost, "/v1/jobs", gin.H{
		"name":         "Denah Pembesian Lantai 7",
		"worker_name":  "Bram",
		"start_date":   "2025-08-07",
		"end_date":     "14/08/2025",
		"team_id":      ref.TeamID,
		"topic_id":     ref.TopicID,
		"sub_topic_id": ref.SubTopicID,
	}, http.StatusCreated, &job)
	assert.Equal(t, models.StatusNotStarted, job.Status)
	assert.Equal(t, models.PriorityMedium, job.Priority)
	assert.Equal(t, "07/08/2025", job.StartDate.String())

	// each row breaks one field of an otherwise valid body; nil drops the key
	validJob := func(change gin.H) gin.H {
		body := gin.H{
			"name":         "x",
			"worker_name":  "Hendra",
			"start_date":   "01/09/2025",
			"end_date":     "08/09/2025",
			"team_id":      ref.TeamID,
			"topic_id":     ref.TopicID,
			"sub_topic_id": ref.SubTopicID,
		}
		for k, v := range change {
			if v == nil {
				delete(body, k)
				continue
			}
			body[k] = v
		}
		return body
	}
	bad := []struct {
		name string
		body any
		want int
	}{
		{"missing name", validJob(gin.H{"name": nil}), http.StatusBadRequest},
		{"blank name", validJob(gin.H{"name": "   "}), http.StatusBadRequest},
		{"missing worker", validJob(gin.H{"worker_name": nil}), http.StatusBadRequest},
		{"blank worker", validJob(gin.H{"worker_name": " "}), http.StatusBadRequest},
		{"missing start date", validJob(gin.H{"start_date": nil}), http.StatusBadRequest},
		{"missing end date", validJob(gin.H{"end_date": nil}), http.StatusBadRequest},
		{"missing ref", validJob(gin.H{"team_id": nil, "topic_id": nil, "sub_topic_id": nil}), http.StatusBadRequest},
		{"bad status", validJob(gin.H{"status": "Done"}), http.StatusBadRequest},
		{"bad date", validJob(gin.H{"start_date": "07-08"}), http.StatusBadRequest},
		{"unknown sub-topic", validJob(gin.H{"sub_topic_id": "nope"}), http.StatusNotFound},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			s.t = t
			s.do(http.MethodPost, "/v1/jobs", tt.body, tt.want, nil)
		})
	}
	s.t = t

	jobPath := "/v1/jobs/" + job.ID
	s.do(http.MethodPatch, jobPath, gin.H{"progress": 40, "priority": "Tinggi"}, http.StatusOK, &job)
	assert.Equal(t, 40, job.Progress)
	assert.Equal(t, models.PriorityHigh, job.Priority)
	s.do(http.MethodPatch, jobPath, gin.H{"progress": 140}, http.StatusBadRequest, nil)
	s.do(http.MethodPatch, jobPath, gin.H{"name": ""}, http.StatusBadRequest, nil)
	s.do(http.MethodPatch, jobPath, gin.H{"worker_name": "  "}, http.StatusBadRequest, nil)
	s.do(http.MethodPatch, jobPath, gin.H{"end_date": ""}, http.StatusBadRequest, nil)
	s.do(http.MethodPatch, jobPath, gin.H{"name": " Denah Pembesian Lantai 7 "}, http.StatusOK, &job)
	assert.Equal(t, "Denah Pembesian Lantai 7", job.Name)

	s.do(http.MethodPut, jobPath+"/status", gin.H{"status": "Approved"}, http.StatusOK, &job)
	assert.Equal(t, models.StatusApproved, job.Status)
	s.do(http.MethodPut, jobPath+"/status", gin.H{"status": "Belum dimulai"}, http.StatusOK, &job)
	assert.Equal(t, models.StatusNotStarted, job.Status)

	var page struct {
		Total        int          `json:"total"`
		TotalPages   int          `json:"total_pages"`
		ShowingStart int          `json:"showing_start"`
		ShowingEnd   int          `json:"showing_end"`
		Jobs         []models.Job `json:"jobs"`
	}
	s.do(http.MethodGet, demoTeam+"/jobs?page=5", nil, http.StatusOK, &page)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.ShowingStart)
	assert.Equal(t, 7, page.ShowingEnd)
	s.do(http.MethodGet, demoTeam+"/jobs?page=x", nil, http.StatusBadRequest, nil)

	var board []struct {
		Status models.JobStatus `json:"status"`
		Jobs   []models.Job     `json:"jobs"`
	}
	s.do(http.MethodGet, demoTeam+"/board", nil, http.StatusOK, &board)
	require.Len(t, board, 5)
	assert.Equal(t, models.StatusNotStarted, board[0].Status)
	assert.Len(t, board[0].Jobs, 3)
	assert.Empty(t, board[4].Jobs)

	var chart struct {
		Total  int `json:"total"`
		Slices []struct {
			Status     models.JobStatus `json:"status"`
			Count      int              `json:"count"`
			Percentage float64          `json:"percentage"`
		} `json:"slices"`
		Jobs []models.Job `json:"jobs"`
	}
	s.do(http.MethodGet, demoTeam+"/chart?status=Selesai", nil, http.StatusOK, &chart)
	assert.Equal(t, 7, chart.Total)
	require.Len(t, chart.Slices, 3)
	assert.Equal(t, 42.9, chart.Slices[0].Percentage)
	assert.Len(t, chart.Jobs, 2)
	s.do(http.MethodGet, demoTeam+"/chart?status=Done", nil, http.StatusBadRequest, nil)

	var bulk struct {
		Removed []string `json:"removed"`
	}
	s.do(http.MethodPost, "/v1/jobs/bulk-delete", gin.H{"ids": []string{job.ID, "missing"}}, http.StatusOK, &bulk)
	assert.Equal(t, []string{job.ID}, bulk.Removed)
	s.do(http.MethodGet, jobPath, nil, http.StatusNotFound, nil)
	s.do(http.MethodDelete, jobPath, nil, http.StatusNotFound, nil)
}

func TestJobMoveNeedsLiveSubTopic(t *testing.T) {
	s := newTestServer(t, workspace.Options{})
	ref := s.demoRef()
	job, ok := s.ws.Jobs.FindByName(ref, "Denah Pembesian Lantai 1")
	require.True(t, ok)
	jobPath := "/v1/jobs/" + job.ID

	s.do(http.MethodPatch, jobPath, gin.H{"sub_topic_id": "nope"}, http.StatusNotFound, nil)
	s.do(http.MethodPatch, jobPath, gin.H{"team_id": "nope", "name": "Dipindah"}, http.StatusNotFound, nil)
	s.do(http.MethodPatch, "/v1/jobs/missing", gin.H{"sub_topic_id": ref.SubTopicID}, http.StatusNotFound, nil)

	var orphans []models.Job
	s.do(http.MethodGet, "/v1/jobs/orphans", nil, http.StatusOK, &orphans)
	assert.Empty(t, orphans)

	var got models.Job
	s.do(http.MethodGet, jobPath, nil, http.StatusOK, &got)
	assert.Equal(t, ref, got.SubTopicRef)
	assert.Equal(t, job.Name, got.Name)

	var st models.SubTopic
	s.do(http.MethodPost, "/v1/teams/struktur/topics/denah-pembalokan/subtopics", gin.H{"name": "Denah Bekisting"}, http.StatusCreated, &st)
	s.do(http.MethodPatch, jobPath, gin.H{"sub_topic_id": st.ID}, http.StatusOK, &got)
	assert.Equal(t, st.ID, got.SubTopicID)
	assert.Equal(t, ref.TopicID, got.TopicID)
}

func TestOrphanedJobsAreHidden(t *testing.T) {
	s := newTestServer(t, workspace.Options{})

	s.do(http.MethodDelete, demoTeam, nil, http.StatusNoContent, nil)
	s.do(http.MethodGet, demoTeam+"/jobs", nil, http.StatusNotFound, nil)

	var orphans []models.Job
	s.do(http.MethodGet, "/v1/jobs/orphans", nil, http.StatusOK, &orphans)
	assert.Len(t, orphans, 6)

	var results []map[string]any
	s.do(http.MethodGet, "/v1/search?q=lantai", nil, http.StatusOK, &results)
	assert.Empty(t, results)
}

func TestHierarchyNamesAreTrimmed(t *testing.T) {
	s := newTestServer(t, workspace.Options{})
	const topicsPath = "/v1/teams/struktur/topics"

	s.do(http.MethodPost, "/v1/teams", gin.H{"name": "   "}, http.StatusBadRequest, nil)
	s.do(http.MethodPost, "/v1/teams", gin.H{"name": "X", "topic_name": " ", "sub_topic_name": "Y"}, http.StatusBadRequest, nil)
	s.do(http.MethodPost, topicsPath, gin.H{"name": "   "}, http.StatusBadRequest, nil)
	s.do(http.MethodPost, topicsPath+"/denah-pembalokan/subtopics", gin.H{"name": "\t"}, http.StatusBadRequest, nil)
	s.do(http.MethodPatch, "/v1/teams/struktur", gin.H{"name": " "}, http.StatusBadRequest, nil)
	s.do(http.MethodPatch, topicsPath+"/denah-pembalokan", gin.H{"name": ""}, http.StatusBadRequest, nil)
	s.do(http.MethodPatch, demoTeam, gin.H{"name": "  "}, http.StatusBadRequest, nil)

	var teams []models.Team
	s.do(http.MethodGet, "/v1/teams", nil, http.StatusOK, &teams)
	require.Len(t, teams, 1)
	assert.Equal(t, "Struktur", teams[0].Name)
	require.Len(t, teams[0].Topics, 1)
	assert.Equal(t, "Denah Pembalokan", teams[0].Topics[0].Name)
	require.Len(t, teams[0].Topics[0].SubTopics, 1)
	assert.Equal(t, "Denah Pembesian", teams[0].Topics[0].SubTopics[0].Name)

	var team models.Team
	s.do(http.MethodPost, "/v1/teams", gin.H{"name": " MEP ", "topic_name": " Plumbing "}, http.StatusCreated, &team)
	assert.Equal(t, "MEP", team.Name)
	require.Len(t, team.Topics, 1)
	assert.Equal(t, "Plumbing", team.Topics[0].Name)

	var topic models.Topic
	s.do(http.MethodPost, topicsPath, gin.H{"name": " Potongan "}, http.StatusCreated, &topic)
	assert.Equal(t, "Potongan", topic.Name)

	var st models.SubTopic
	s.do(http.MethodPatch, demoTeam, gin.H{"name": " Denah Besi "}, http.StatusOK, &st)
	assert.Equal(t, "Denah Besi", st.Name)
}

func TestCascadeRemovesJobs(t *testing.T) {
	s := newTestServer(t, workspace.Options{CascadeJobs: true})

	s.do(http.MethodDelete, "/v1/teams/struktur", nil, http.StatusNoContent, nil)
	var orphans []models.Job
	s.do(http.MethodGet, "/v1/jobs/orphans", nil, http.StatusOK, &orphans)
	assert.Empty(t, orphans)
	assert.Empty(t, s.ws.Jobs.Jobs())
}

func TestSelectionEndpoints(t *testing.T) {
	s := newTestServer(t, workspace.Options{})
	ref := s.demoRef()
	job, ok := s.ws.Jobs.FindByName(ref, "Denah Pembesian Lantai 3")
	require.True(t, ok)

	s.do(http.MethodGet, "/v1/selection", nil, http.StatusOK, nil)

	var sel models.Selection
	s.do(http.MethodPut, "/v1/selection", gin.H{
		"team_id":         ref.TeamID,
		"topic_id":        ref.TopicID,
		"sub_topic_id":    ref.SubTopicID,
		"selected_job_id": job.ID,
	}, http.StatusOK, &sel)
	assert.Equal(t, "Struktur", sel.TeamName)
	assert.Equal(t, job.ID, sel.SelectedJobID)

	s.do(http.MethodPatch, demoTeam, gin.H{"name": "Denah Besi"}, http.StatusOK, nil)
	s.do(http.MethodGet, "/v1/selection", nil, http.StatusOK, &sel)
	assert.Equal(t, "Denah Besi", sel.SubTopicName)

	s.do(http.MethodPut, "/v1/selection", gin.H{"team_id": "struktur", "topic_id": "x", "sub_topic_id": "y"}, http.StatusNotFound, nil)
	s.do(http.MethodPut, "/v1/selection", gin.H{
		"team_id":         ref.TeamID,
		"topic_id":        ref.TopicID,
		"sub_topic_id":    ref.SubTopicID,
		"selected_job_id": "missing",
	}, http.StatusNotFound, nil)

	s.do(http.MethodDelete, "/v1/selection", nil, http.StatusNoContent, nil)
	w := s.do(http.MethodGet, "/v1/selection", nil, http.StatusOK, nil)
	assert.Equal(t, "null", w.Body.String())
}

func TestInboxEndpoints(t *testing.T) {
	s := newTestServer(t, workspace.Options{})
	ref := s.demoRef()
	want, ok := s.ws.Jobs.FindByName(ref, "Denah Pembesian Lantai 2")
	require.True(t, ok)

	var inbox inboxResponse
	s.do(http.MethodGet, "/v1/inbox", nil, http.StatusOK, &inbox)
	require.Len(t, inbox.Messages, 2)
	assert.Equal(t, "2", inbox.Messages[0].ID)
	assert.Equal(t, 2, inbox.UnreadCount)

	var opened struct {
		Selection   *models.Selection `json:"selection"`
		UnreadCount int               `json:"unread_count"`
	}
	s.do(http.MethodPost, "/v1/inbox/2/open", nil, http.StatusOK, &opened)
	require.NotNil(t, opened.Selection)
	assert.Equal(t, want.ID, opened.Selection.SelectedJobID)
	assert.Equal(t, 1, opened.UnreadCount)

	s.do(http.MethodPost, "/v1/inbox/1/read", nil, http.StatusOK, nil)
	s.do(http.MethodPost, "/v1/inbox/1/read", nil, http.StatusOK, nil)
	s.do(http.MethodPost, "/v1/inbox/missing/read", nil, http.StatusNotFound, nil)
	s.do(http.MethodPost, "/v1/inbox/missing/open", nil, http.StatusNotFound, nil)

	var msg models.InboxMessage
	s.do(http.MethodPost, "/v1/inbox", gin.H{"subject": "Rapat koordinasi"}, http.StatusCreated, &msg)
	assert.Equal(t, "Bima", msg.Sender)
	assert.False(t, msg.IsRead)
	assert.NotNil(t, msg.Mentions)

	s.do(http.MethodPost, "/v1/inbox/"+msg.ID+"/open", nil, http.StatusOK, &opened)
	assert.Nil(t, opened.Selection)
	assert.Equal(t, 0, opened.UnreadCount)
}

func TestActivityEndpoints(t *testing.T) {
	s := newTestServer(t, workspace.Options{})
	job, ok := s.ws.Jobs.FindByName(s.demoRef(), "Denah Pembesian Lantai 4")
	require.True(t, ok)
	jobPath := "/v1/jobs/" + job.ID

	var doc models.Document
	s.do(http.MethodPost, jobPath+"/documents", gin.H{"name": "DLT_4.pdf", "size_bytes": 11429478}, http.StatusCreated, &doc)
	assert.Equal(t, "10.90 MB", doc.Size)

	var comment models.Comment
	s.do(http.MethodPost, jobPath+"/comments", gin.H{
		"text":       "Sudah direvisi @Galang",
		"attachment": gin.H{"name": "revisi.pdf", "size_bytes": 1048576},
	}, http.StatusCreated, &comment)
	assert.Equal(t, "Bima", comment.Author)
	assert.Equal(t, []string{"Galang"}, comment.Mentions)
	require.NotNil(t, comment.Attachment)
	assert.Equal(t, "1.00 MB", comment.Attachment.Size)

	var activity models.JobActivity
	s.do(http.MethodGet, jobPath+"/activity", nil, http.StatusOK, &activity)
	assert.Len(t, activity.Documents, 1)
	assert.Len(t, activity.Comments, 1)

	var inbox inboxResponse
	s.do(http.MethodGet, "/v1/inbox", nil, http.StatusOK, &inbox)
	assert.Equal(t, 3, inbox.UnreadCount)
	assert.Equal(t, job.ID, inbox.Messages[0].JobID)

	s.do(http.MethodDelete, jobPath+"/documents/"+doc.ID, nil, http.StatusNoContent, nil)
	s.do(http.MethodDelete, jobPath+"/documents/"+doc.ID, nil, http.StatusNotFound, nil)
	s.do(http.MethodPost, jobPath+"/comments", gin.H{"text": "   "}, http.StatusBadRequest, nil)
	s.do(http.MethodPost, jobPath+"/comments", gin.H{}, http.StatusBadRequest, nil)

	var fileOnly models.Comment
	s.do(http.MethodPost, jobPath+"/comments", gin.H{
		"attachment": gin.H{"name": "foto_lapangan.jpg", "size_bytes": 1048576},
	}, http.StatusCreated, &fileOnly)
	assert.Empty(t, fileOnly.Text)
	assert.Empty(t, fileOnly.Mentions)
	require.NotNil(t, fileOnly.Attachment)
	assert.Equal(t, "1.00 MB", fileOnly.Attachment.Size)
	s.do(http.MethodGet, jobPath+"/activity", nil, http.StatusOK, &activity)
	assert.Len(t, activity.Comments, 2)

	s.do(http.MethodPost, "/v1/jobs/missing/comments", gin.H{"text": "x"}, http.StatusNotFound, nil)
	s.do(http.MethodPost, "/v1/jobs/missing/documents", gin.H{"name": "x"}, http.StatusNotFound, nil)
	s.do(http.MethodGet, "/v1/jobs/missing/activity", nil, http.StatusNotFound, nil)
}

func TestSearchEndpoint(t *testing.T) {
	s := newTestServer(t, workspace.Options{})

	var results []struct {
		Type      string            `json:"type"`
		Navigable bool              `json:"navigable"`
		Title     string            `json:"title"`
		Target    *models.Selection `json:"target"`
	}
	s.do(http.MethodGet, "/v1/search?q=PEMBESIAN", nil, http.StatusOK, &results)
	require.NotEmpty(t, results)
	assert.Equal(t, "subtopic", results[0].Type)
	assert.True(t, results[0].Navigable)
	require.NotNil(t, results[0].Target)
	assert.Equal(t, "denah-pembesian", results[0].Target.SubTopicID)

	w := s.do(http.MethodGet, "/v1/search?q=%20%20", nil, http.StatusOK, nil)
	assert.JSONEq(t, "[]", w.Body.String())
}
