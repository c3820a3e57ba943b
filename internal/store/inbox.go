package store

import (
	"sync"
	"time"

	"github.com/lalith-99/worktrack/internal/models"
)

// InboxStore keeps notification messages newest first.
type InboxStore struct {
	mu       sync.RWMutex
	messages []models.InboxMessage
	notify   Notifier
	now      func() time.Time
}

func NewInboxStore(notify Notifier) *InboxStore {
	return &InboxStore{
		messages: make([]models.InboxMessage, 0),
		notify:   notify,
		now:      time.Now,
	}
}

func (s *InboxStore) Messages() []models.InboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.InboxMessage, len(s.messages))
	for i, m := range s.messages {
		out[i] = cloneMessage(m)
	}
	return out
}

func (s *InboxStore) Message(id string) (models.InboxMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.messages {
		if m.ID == id {
			return cloneMessage(m), true
		}
	}
	return models.InboxMessage{}, false
}

// AddMessage prepends msg under a fresh id. A zero Timestamp becomes now.
func (s *InboxStore) AddMessage(msg models.InboxMessage) models.InboxMessage {
	msg = cloneMessage(msg)
	msg.ID = newID()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	if msg.Mentions == nil {
		msg.Mentions = []string{}
	}

	s.mu.Lock()
	s.messages = append([]models.InboxMessage{msg}, s.messages...)
	s.mu.Unlock()

	s.notify.emit(models.ResourceInbox, models.ActionAdded, msg.ID)
	return cloneMessage(msg)
}

// MarkAsRead flags the message read. Marking an already read message again
// changes nothing and emits nothing.
func (s *InboxStore) MarkAsRead(id string) bool {
	s.mu.Lock()
	found, changed := false, false
	for i := range s.messages {
		if s.messages[i].ID == id {
			found = true
			changed = !s.messages[i].IsRead
			s.messages[i].IsRead = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.notify.emit(models.ResourceInbox, models.ActionUpdated, id)
	}
	return found
}

// UnreadCount is derived on every call.
func (s *InboxStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, m := range s.messages {
		if !m.IsRead {
			n++
		}
	}
	return n
}

// Restore replaces every message without notifying. Order is kept as given.
func (s *InboxStore) Restore(messages []models.InboxMessage) {
	restored := make([]models.InboxMessage, len(messages))
	for i, m := range messages {
		restored[i] = cloneMessage(m)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = restored
}
