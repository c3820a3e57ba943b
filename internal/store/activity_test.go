package store

import (
	"testing"

	"github.com/lalith-99/worktrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityStore_Documents(t *testing.T) {
	t.Parallel()

	s := NewActivityStore(nil)
	doc := s.AddDocument("job-1", "DLT_2.pdf", 11429478)
	assert.Equal(t, "10.90 MB", doc.Size)

	other := s.AddDocument("job-1", "DLT_3.pdf", 1024*1024)
	assert.Equal(t, "1.00 MB", other.Size)

	require.True(t, s.RemoveDocument("job-1", doc.ID))
	assert.False(t, s.RemoveDocument("job-1", doc.ID))
	assert.False(t, s.RemoveDocument("job-2", other.ID))

	a := s.Activity("job-1")
	require.Len(t, a.Documents, 1)
	assert.Equal(t, "DLT_3.pdf", a.Documents[0].Name)
}

func TestActivityStore_CommentsAndForget(t *testing.T) {
	t.Parallel()

	s := NewActivityStore(nil)
	c := s.AddComment("job-1", models.Comment{
		Author:     "Galang",
		Text:       "Ini direvisi lagi ya mas @Bima",
		Attachment: &models.Attachment{Name: "DLT1.pdf", SizeBytes: 2 * 1024 * 1024},
	})
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "2.00 MB", c.Attachment.Size)

	require.Len(t, s.Activity("job-1").Comments, 1)
	assert.Len(t, s.All(), 1)

	s.Forget("job-1")
	a := s.Activity("job-1")
	assert.Empty(t, a.Comments)
	assert.NotNil(t, a.Documents)
}
