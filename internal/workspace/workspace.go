// Package workspace bundles the stores of one session and implements the
// operations that span more than one store: cascading removal, inbox
// deep links, comment mentions, search and navigation.
package workspace

import (
	"regexp"
	"time"

	"github.com/lalith-99/worktrack/internal/models"
	"github.com/lalith-99/worktrack/internal/search"
	"github.com/lalith-99/worktrack/internal/store"
)

// Options tune a workspace.
type Options struct {
	// CascadeJobs removes jobs (and their activity) together with the team,
	// topic or sub-topic they belong to. Off by default: such jobs are kept
	// as orphans and hidden from every view.
	CascadeJobs bool
}

// Workspace is the state of one session.
type Workspace struct {
	ID    string
	Owner string

	Teams    *store.TeamStore
	Jobs     *store.JobStore
	Inbox    *store.InboxStore
	Activity *store.ActivityStore

	opts     Options
	onChange func(models.Event)
	now      func() time.Time
}

// New creates an empty workspace. onChange, if non-nil, receives an event
// after every successful mutation.
func New(id, owner string, opts Options, onChange func(models.Event)) *Workspace {
	w := &Workspace{
		ID:       id,
		Owner:    owner,
		opts:     opts,
		onChange: onChange,
		now:      time.Now,
	}
	notify := store.Notifier(w.emit)
	w.Teams = store.NewTeamStore(notify)
	w.Jobs = store.NewJobStore(notify)
	w.Inbox = store.NewInboxStore(notify)
	w.Activity = store.NewActivityStore(notify)
	return w
}

func (w *Workspace) emit(resource models.Resource, action models.Action, id string) {
	if w.onChange == nil {
		return
	}
	w.onChange(models.Event{
		WorkspaceID: w.ID,
		Resource:    resource,
		Action:      action,
		ID:          id,
		At:          w.now(),
	})
}

// Snapshot copies the whole workspace state.
func (w *Workspace) Snapshot() models.Snapshot {
	return models.Snapshot{
		Teams:     w.Teams.Teams(),
		Jobs:      w.Jobs.Jobs(),
		Messages:  w.Inbox.Messages(),
		Activity:  w.Activity.All(),
		Selection: w.Teams.Selected(),
	}
}

// Restore replaces the whole workspace state and emits a single event.
func (w *Workspace) Restore(snap models.Snapshot) {
	w.restore(snap)
	w.emit(models.ResourceTeams, models.ActionRestored, w.ID)
}

func (w *Workspace) restore(snap models.Snapshot) {
	w.Teams.Restore(snap.Teams, snap.Selection)
	w.Jobs.Restore(snap.Jobs)
	w.Inbox.Restore(snap.Messages)
	w.Activity.Restore(snap.Activity)
}

// RemoveTeam removes a team from the hierarchy. With CascadeJobs its jobs go
// too.
func (w *Workspace) RemoveTeam(teamID string) bool {
	if !w.Teams.RemoveTeam(teamID) {
		return false
	}
	if w.opts.CascadeJobs {
		w.removeJobs(func(j models.Job) bool { return j.TeamID == teamID })
	}
	return true
}

func (w *Workspace) RemoveTopic(teamID, topicID string) bool {
	if !w.Teams.RemoveTopic(teamID, topicID) {
		return false
	}
	if w.opts.CascadeJobs {
		w.removeJobs(func(j models.Job) bool { return j.TeamID == teamID && j.TopicID == topicID })
	}
	return true
}

func (w *Workspace) RemoveSubTopic(teamID, topicID, subTopicID string) bool {
	if !w.Teams.RemoveSubTopic(teamID, topicID, subTopicID) {
		return false
	}
	if w.opts.CascadeJobs {
		ref := models.SubTopicRef{TeamID: teamID, TopicID: topicID, SubTopicID: subTopicID}
		w.removeJobs(func(j models.Job) bool { return j.SubTopicRef == ref })
	}
	return true
}

// RemoveJobs removes jobs and their documents and comments. It returns the
// ids that existed.
func (w *Workspace) RemoveJobs(ids ...string) []string {
	removed := w.Jobs.RemoveJobs(ids)
	for _, id := range removed {
		w.Activity.Forget(id)
	}
	return removed
}

func (w *Workspace) removeJobs(fn func(models.Job) bool) {
	for _, id := range w.Jobs.RemoveWhere(fn) {
		w.Activity.Forget(id)
	}
}

// VisibleJobs returns the jobs of a sub-topic that still exists. Jobs under a
// removed sub-topic are invisible.
func (w *Workspace) VisibleJobs(ref models.SubTopicRef) ([]models.Job, bool) {
	if _, _, _, ok := w.Teams.Locate(ref); !ok {
		return nil, false
	}
	return w.Jobs.JobsBySubTopic(ref), true
}

// OrphanedJobs lists jobs whose sub-topic no longer exists.
func (w *Workspace) OrphanedJobs() []models.Job {
	known := make(map[models.SubTopicRef]bool)
	for _, team := range w.Teams.Teams() {
		for _, topic := range team.Topics {
			for _, st := range topic.SubTopics {
				known[models.SubTopicRef{TeamID: team.ID, TopicID: topic.ID, SubTopicID: st.ID}] = true
			}
		}
	}

	out := make([]models.Job, 0)
	for _, j := range w.Jobs.Jobs() {
		if !known[j.SubTopicRef] {
			out = append(out, j)
		}
	}
	return out
}

// Search runs a query over the current hierarchy and jobs.
func (w *Workspace) Search(query string) []search.Result {
	return search.Run(query, w.Teams.Teams(), w.Jobs.Jobs())
}

// Navigate points the cursor at a live sub-topic, copying its current names.
// jobID, when non-empty, preselects that job on the sub-topic page.
func (w *Workspace) Navigate(ref models.SubTopicRef, jobID string) (models.Selection, bool) {
	team, topic, st, ok := w.Teams.Locate(ref)
	if !ok {
		return models.Selection{}, false
	}
	sel := models.Selection{
		SubTopicRef:         ref,
		SubTopicName:        st.Name,
		SubTopicDescription: st.Description,
		TeamName:            team.Name,
		TopicName:           topic.Name,
		SelectedJobID:       jobID,
	}
	w.Teams.SetSelected(&sel)
	return sel, true
}

// OpenMessage is what clicking an inbox message does: mark it read and, when
// it links into the hierarchy, move the cursor there with the linked job
// preselected if one can be found.
//
// The job is looked up by the message's JobID first. Messages without one
// fall back to matching the subject against job names under the linked
// sub-topic, which breaks once the job is renamed.
//
// The cursor is built from the link's copied names, not from the live
// hierarchy. The returned selection is nil when the message has no link.
func (w *Workspace) OpenMessage(messageID string) (*models.Selection, bool) {
	msg, ok := w.Inbox.Message(messageID)
	if !ok {
		return nil, false
	}
	w.Inbox.MarkAsRead(messageID)

	if msg.Link == nil || msg.Link.SubTopicRef.IsZero() {
		return nil, true
	}

	sel := models.Selection{
		SubTopicRef:         msg.Link.SubTopicRef,
		SubTopicName:        msg.Link.SubTopicName,
		SubTopicDescription: msg.Link.SubTopicDescription,
		TeamName:            msg.Link.TeamName,
		TopicName:           msg.Link.TopicName,
	}
	if job, found := w.resolveJob(msg); found {
		sel.SelectedJobID = job.ID
	}
	w.Teams.SetSelected(&sel)
	return &sel, true
}

func (w *Workspace) resolveJob(msg models.InboxMessage) (models.Job, bool) {
	if msg.JobID != "" {
		if job, ok := w.Jobs.Job(msg.JobID); ok && job.SubTopicRef == msg.Link.SubTopicRef {
			return job, true
		}
	}
	return w.Jobs.FindByName(msg.Link.SubTopicRef, msg.Subject)
}

var mentionPattern = regexp.MustCompile(`@([\p{L}\p{N}_]+(?:[.-][\p{L}\p{N}_]+)*)`)

// Mentions extracts the distinct @names of a text in order of appearance.
func Mentions(text string) []string {
	out := make([]string, 0)
	seen := make(map[string]bool)
	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// AddComment posts a comment on a job. Every @mention in the text drops a
// message in the inbox linking straight to the job.
func (w *Workspace) AddComment(jobID, author, text string, attachment *models.Attachment) (models.Comment, bool) {
	job, ok := w.Jobs.Job(jobID)
	if !ok {
		return models.Comment{}, false
	}

	mentions := Mentions(text)
	c := w.Activity.AddComment(jobID, models.Comment{
		Author:     author,
		Text:       text,
		Mentions:   mentions,
		Attachment: attachment,
	})
	if len(mentions) == 0 {
		return c, true
	}

	msg := models.InboxMessage{
		Sender:    author,
		Subject:   job.Name,
		Preview:   text,
		Timestamp: c.CreatedAt,
		Mentions:  mentions,
		JobID:     job.ID,
	}
	if team, topic, st, found := w.Teams.Locate(job.SubTopicRef); found {
		msg.Link = &models.MessageLink{
			SubTopicRef:         job.SubTopicRef,
			TeamName:            team.Name,
			TopicName:           topic.Name,
			SubTopicName:        st.Name,
			SubTopicDescription: st.Description,
		}
	}
	w.Inbox.AddMessage(msg)
	return c, true
}
