package models

import (
	"fmt"
	"time"
)

// Document is a file attached to a job. Only the name and size are kept;
// the file content never reaches the server.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	Size       string    `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Attachment is a file reference on a comment.
type Attachment struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Size      string `json:"size"`
}

// Comment is one entry of a job's discussion thread.
type Comment struct {
	ID         string      `json:"id"`
	Author     string      `json:"author"`
	Text       string      `json:"text"`
	Mentions   []string    `json:"mentions"`
	Attachment *Attachment `json:"attachment,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// JobActivity is everything on a job's detail page besides the job fields.
type JobActivity struct {
	Documents []Document `json:"documents"`
	Comments  []Comment  `json:"comments"`
}

// FormatSize renders a byte count the way the job detail page does: "10.90 MB".
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}
