package store

import (
	"slices"
	"sync"

	"github.com/lalith-99/worktrack/internal/models"
)

// JobStore owns the flat list of jobs. Hierarchy membership is only the id
// triple each job carries; removing a team does not touch this store.
type JobStore struct {
	mu     sync.RWMutex
	jobs   []models.Job
	notify Notifier
}

func NewJobStore(notify Notifier) *JobStore {
	return &JobStore{
		jobs:   make([]models.Job, 0),
		notify: notify,
	}
}

// Jobs returns every job in store order.
func (s *JobStore) Jobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.jobs)
}

func (s *JobStore) Job(id string) (models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(id)
	if i < 0 {
		return models.Job{}, false
	}
	return s.jobs[i], true
}

// AddJob appends job under a fresh id. Any id already on job is ignored.
func (s *JobStore) AddJob(job models.Job) models.Job {
	job.ID = newID()
	job.Progress = models.ClampProgress(job.Progress)

	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()

	s.notify.emit(models.ResourceJobs, models.ActionAdded, job.ID)
	return job
}

// UpdateJob merges patch into the job. The id never changes.
func (s *JobStore) UpdateJob(id string, patch models.JobPatch) (models.Job, bool) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Job{}, false
	}
	patch.Apply(&s.jobs[i])
	updated := s.jobs[i]
	s.mu.Unlock()

	s.notify.emit(models.ResourceJobs, models.ActionUpdated, id)
	return updated, true
}

func (s *JobStore) RemoveJob(id string) bool {
	return len(s.RemoveJobs([]string{id})) == 1
}

// RemoveJobs drops every listed job and returns the ids that existed.
func (s *JobStore) RemoveJobs(ids []string) []string {
	return s.RemoveWhere(func(j models.Job) bool { return slices.Contains(ids, j.ID) })
}

// RemoveWhere drops every job for which fn returns true, preserving the
// order of the survivors, and returns the removed ids.
func (s *JobStore) RemoveWhere(fn func(models.Job) bool) []string {
	removed := make([]string, 0)

	s.mu.Lock()
	s.jobs = slices.DeleteFunc(s.jobs, func(j models.Job) bool {
		if fn(j) {
			removed = append(removed, j.ID)
			return true
		}
		return false
	})
	s.mu.Unlock()

	for _, id := range removed {
		s.notify.emit(models.ResourceJobs, models.ActionRemoved, id)
	}
	return removed
}

// JobsBySubTopic returns the jobs whose triple equals ref exactly, in store
// order.
func (s *JobStore) JobsBySubTopic(ref models.SubTopicRef) []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Job, 0)
	for _, j := range s.jobs {
		if j.SubTopicRef == ref {
			out = append(out, j)
		}
	}
	return out
}

// FindByName returns the first job under ref called name.
func (s *JobStore) FindByName(ref models.SubTopicRef, name string) (models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, j := range s.jobs {
		if j.SubTopicRef == ref && j.Name == name {
			return j, true
		}
	}
	return models.Job{}, false
}

// Restore replaces every job without notifying.
func (s *JobStore) Restore(jobs []models.Job) {
	restored := slices.Clone(jobs)
	if restored == nil {
		restored = make([]models.Job, 0)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = restored
}

func (s *JobStore) index(id string) int {
	return slices.IndexFunc(s.jobs, func(j models.Job) bool { return j.ID == id })
}
