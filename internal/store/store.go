// Package store holds the in-memory state of one workspace: the team
// hierarchy, the flat job list, the inbox and per-job activity.
//
// Stores never fail. A lookup that misses is a no-op reported through a
// false return value. Every read hands out a deep copy, and every successful
// mutation calls the store's Notifier after the lock is released.
package store

import (
	"slices"

	"github.com/google/uuid"
	"github.com/lalith-99/worktrack/internal/models"
)

// Notifier is told about each successful mutation. It must not call back
// into the store synchronously while holding its own locks.
type Notifier func(resource models.Resource, action models.Action, id string)

func (n Notifier) emit(resource models.Resource, action models.Action, id string) {
	if n != nil {
		n(resource, action, id)
	}
}

func newID() string {
	return uuid.NewString()
}

func cloneTeam(t models.Team) models.Team {
	t.Topics = cloneTopics(t.Topics)
	return t
}

func cloneTopics(topics []models.Topic) []models.Topic {
	out := make([]models.Topic, len(topics))
	for i, tp := range topics {
		tp.SubTopics = slices.Clone(tp.SubTopics)
		if tp.SubTopics == nil {
			tp.SubTopics = []models.SubTopic{}
		}
		out[i] = tp
	}
	return out
}

func cloneMessage(m models.InboxMessage) models.InboxMessage {
	m.Mentions = slices.Clone(m.Mentions)
	if m.Link != nil {
		link := *m.Link
		m.Link = &link
	}
	return m
}

func cloneSelection(s *models.Selection) *models.Selection {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneActivity(a models.JobActivity) models.JobActivity {
	out := models.JobActivity{
		Documents: slices.Clone(a.Documents),
		Comments:  make([]models.Comment, len(a.Comments)),
	}
	if out.Documents == nil {
		out.Documents = []models.Document{}
	}
	for i, c := range a.Comments {
		c.Mentions = slices.Clone(c.Mentions)
		if c.Attachment != nil {
			att := *c.Attachment
			c.Attachment = &att
		}
		out.Comments[i] = c
	}
	return out
}
