package models

import (
	"time"
)

// SubTopicRef addresses one sub-topic by its full (team, topic, sub-topic)
// id triple. Jobs, the navigation cursor and inbox links all embed it.
type SubTopicRef struct {
	TeamID     string `json:"team_id"`
	TopicID    string `json:"topic_id"`
	SubTopicID string `json:"sub_topic_id"`
}

// IsZero reports whether no part of the triple is set.
func (r SubTopicRef) IsZero() bool {
	return r.TeamID == "" && r.TopicID == "" && r.SubTopicID == ""
}

// Team is the top-level grouping, usually one discipline of a construction
// project ("Struktur", "Arsitektur"). A team owns its topics: removing the
// team removes every topic and sub-topic under it.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Topics    []Topic   `json:"topics"`
	CreatedAt time.Time `json:"created_at"`
}

// Topic is the first categorization level inside a team.
type Topic struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	SubTopics []SubTopic `json:"sub_topics"`
}

// SubTopic is the leaf of the hierarchy. Jobs hang off it by id.
type SubTopic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TeamPatch is a shallow update of a team. Nil fields are left untouched;
// a non-nil Topics replaces the whole topic list.
type TeamPatch struct {
	Name   *string  `json:"name"`
	Topics *[]Topic `json:"topics"`
}

// SubTopicPatch is a shallow update of a sub-topic.
type SubTopicPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Selection is the navigation cursor: where the user currently is.
//
// The names and description are copied at selection time. They do not follow
// later renames, except for the sub-topic fields which UpdateSubTopic keeps
// in sync while the cursor points at that sub-topic.
type Selection struct {
	SubTopicRef
	SubTopicName        string `json:"sub_topic_name"`
	SubTopicDescription string `json:"sub_topic_description"`
	TeamName            string `json:"team_name"`
	TopicName           string `json:"topic_name"`
	SelectedJobID       string `json:"selected_job_id,omitempty"`
}

// MessageLink deep-links an inbox message to a place in the hierarchy.
type MessageLink struct {
	SubTopicRef
	TeamName            string `json:"team_name"`
	TopicName           string `json:"topic_name"`
	SubTopicName        string `json:"sub_topic_name"`
	SubTopicDescription string `json:"sub_topic_description"`
}

// InboxMessage is a notification shown in the inbox drawer.
//
// JobID, when set, points straight at a job. Older messages only carry the
// Link and are resolved to a job by matching Subject against job names.
type InboxMessage struct {
	ID        string       `json:"id"`
	Sender    string       `json:"sender"`
	Subject   string       `json:"subject"`
	Preview   string       `json:"preview"`
	Timestamp time.Time    `json:"timestamp"`
	IsRead    bool         `json:"is_read"`
	Mentions  []string     `json:"mentions"`
	JobID     string       `json:"job_id,omitempty"`
	Link      *MessageLink `json:"link,omitempty"`
}

// Snapshot is the full state of one workspace. It is what gets persisted
// when a database is configured and what a new workspace is seeded from.
type Snapshot struct {
	Teams     []Team                 `json:"teams"`
	Jobs      []Job                  `json:"jobs"`
	Messages  []InboxMessage         `json:"messages"`
	Activity  map[string]JobActivity `json:"activity"`
	Selection *Selection             `json:"selection,omitempty"`
}

// WorkspaceRecord is a persisted workspace snapshot.
type WorkspaceRecord struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Snapshot  Snapshot  `json:"snapshot"`
	UpdatedAt time.Time `json:"updated_at"`
}
