package store

import (
	"slices"
	"sync"
	"time"

	"github.com/lalith-99/worktrack/internal/models"
)

// ActivityStore holds the documents and comments of each job's detail page,
// keyed by job id.
type ActivityStore struct {
	mu     sync.RWMutex
	byJob  map[string]*models.JobActivity
	notify Notifier
	now    func() time.Time
}

func NewActivityStore(notify Notifier) *ActivityStore {
	return &ActivityStore{
		byJob:  make(map[string]*models.JobActivity),
		notify: notify,
		now:    time.Now,
	}
}

// Activity returns the documents and comments of a job. Unknown jobs have
// empty activity.
func (s *ActivityStore) Activity(jobID string) models.JobActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byJob[jobID]
	if !ok {
		return models.JobActivity{Documents: []models.Document{}, Comments: []models.Comment{}}
	}
	return cloneActivity(*a)
}

func (s *ActivityStore) AddDocument(jobID, name string, sizeBytes int64) models.Document {
	doc := models.Document{
		ID:         newID(),
		Name:       name,
		SizeBytes:  sizeBytes,
		Size:       models.FormatSize(sizeBytes),
		UploadedAt: s.now(),
	}

	s.mu.Lock()
	a := s.entry(jobID)
	a.Documents = append(a.Documents, doc)
	s.mu.Unlock()

	s.notify.emit(models.ResourceActivity, models.ActionAdded, doc.ID)
	return doc
}

func (s *ActivityStore) RemoveDocument(jobID, docID string) bool {
	s.mu.Lock()
	a, ok := s.byJob[jobID]
	removed := false
	if ok {
		n := len(a.Documents)
		a.Documents = slices.DeleteFunc(a.Documents, func(d models.Document) bool { return d.ID == docID })
		removed = len(a.Documents) != n
	}
	s.mu.Unlock()

	if removed {
		s.notify.emit(models.ResourceActivity, models.ActionRemoved, docID)
	}
	return removed
}

// AddComment appends c under a fresh id and timestamp.
func (s *ActivityStore) AddComment(jobID string, c models.Comment) models.Comment {
	c.ID = newID()
	c.CreatedAt = s.now()
	if c.Mentions == nil {
		c.Mentions = []string{}
	}
	if c.Attachment != nil {
		att := *c.Attachment
		att.Size = models.FormatSize(att.SizeBytes)
		c.Attachment = &att
	}

	s.mu.Lock()
	a := s.entry(jobID)
	a.Comments = append(a.Comments, c)
	s.mu.Unlock()

	s.notify.emit(models.ResourceActivity, models.ActionAdded, c.ID)
	return c
}

// Forget drops all activity of a job.
func (s *ActivityStore) Forget(jobID string) {
	s.mu.Lock()
	_, ok := s.byJob[jobID]
	delete(s.byJob, jobID)
	s.mu.Unlock()

	if ok {
		s.notify.emit(models.ResourceActivity, models.ActionRemoved, jobID)
	}
}

// All returns a copy of every job's activity.
func (s *ActivityStore) All() map[string]models.JobActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.JobActivity, len(s.byJob))
	for id, a := range s.byJob {
		out[id] = cloneActivity(*a)
	}
	return out
}

// Restore replaces all activity without notifying.
func (s *ActivityStore) Restore(all map[string]models.JobActivity) {
	restored := make(map[string]*models.JobActivity, len(all))
	for id, a := range all {
		c := cloneActivity(a)
		restored[id] = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byJob = restored
}

func (s *ActivityStore) entry(jobID string) *models.JobActivity {
	a, ok := s.byJob[jobID]
	if !ok {
		a = &models.JobActivity{Documents: []models.Document{}, Comments: []models.Comment{}}
		s.byJob[jobID] = a
	}
	return a
}
