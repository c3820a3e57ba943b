package models

import "time"

// Resource names the store an event came from.
type Resource string

const (
	ResourceTeams     Resource = "teams"
	ResourceJobs      Resource = "jobs"
	ResourceInbox     Resource = "inbox"
	ResourceSelection Resource = "selection"
	ResourceActivity  Resource = "activity"
)

type Action string

const (
	ActionAdded    Action = "added"
	ActionUpdated  Action = "updated"
	ActionRemoved  Action = "removed"
	ActionSelected Action = "selected"
	ActionRestored Action = "restored"
)

// Event tells subscribers that a workspace changed. It carries no payload:
// clients refetch whatever view they are showing.
type Event struct {
	WorkspaceID string    `json:"workspace_id"`
	Resource    Resource  `json:"resource"`
	Action      Action    `json:"action"`
	ID          string    `json:"id,omitempty"`
	At          time.Time `json:"at"`
}
