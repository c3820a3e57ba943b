package store

import (
	"testing"
	"time"

	"github.com/lalith-99/worktrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInboxStore_AddMessagePrepends(t *testing.T) {
	t.Parallel()

	s := NewInboxStore(nil)
	first := s.AddMessage(models.InboxMessage{Sender: "Galang", Subject: "one"})
	second := s.AddMessage(models.InboxMessage{Sender: "Galang", Subject: "two"})

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, second.ID, msgs[0].ID)
	assert.Equal(t, first.ID, msgs[1].ID)
	assert.False(t, msgs[0].Timestamp.IsZero())
	assert.NotNil(t, msgs[0].Mentions)
}

func TestInboxStore_KeepsGivenTimestamp(t *testing.T) {
	t.Parallel()

	s := NewInboxStore(nil)
	at := time.Date(2025, 8, 7, 9, 0, 0, 0, time.UTC)
	msg := s.AddMessage(models.InboxMessage{Subject: "x", Timestamp: at})
	assert.Equal(t, at, msg.Timestamp)
}

func TestInboxStore_MarkAsReadIdempotent(t *testing.T) {
	t.Parallel()

	var events int
	s := NewInboxStore(func(models.Resource, models.Action, string) { events++ })
	a := s.AddMessage(models.InboxMessage{Subject: "a"})
	s.AddMessage(models.InboxMessage{Subject: "b"})
	require.Equal(t, 2, s.UnreadCount())

	require.True(t, s.MarkAsRead(a.ID))
	once := s.UnreadCount()
	require.True(t, s.MarkAsRead(a.ID))

	assert.Equal(t, 1, once)
	assert.Equal(t, once, s.UnreadCount())
	assert.Equal(t, 3, events, "two adds and a single read transition")
}

func TestInboxStore_MarkAsReadMissing(t *testing.T) {
	t.Parallel()

	s := NewInboxStore(nil)
	s.AddMessage(models.InboxMessage{Subject: "a"})
	assert.False(t, s.MarkAsRead("missing"))
	assert.Equal(t, 1, s.UnreadCount())
}

func TestInboxStore_ReadsAreCopies(t *testing.T) {
	t.Parallel()

	s := NewInboxStore(nil)
	msg := s.AddMessage(models.InboxMessage{
		Subject:  "a",
		Mentions: []string{"Bima"},
		Link:     &models.MessageLink{TeamName: "Struktur"},
	})

	got, ok := s.Message(msg.ID)
	require.True(t, ok)
	got.Mentions[0] = "mutated"
	got.Link.TeamName = "mutated"

	again, _ := s.Message(msg.ID)
	assert.Equal(t, "Bima", again.Mentions[0])
	assert.Equal(t, "Struktur", again.Link.TeamName)
}
