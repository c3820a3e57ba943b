package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/lalith-99/worktrack/internal/models"
)

// PlaceholderDescription is the description AddSubTopic gives a new
// sub-topic until someone edits it.
func PlaceholderDescription(name string) string {
	return fmt.Sprintf("Shopdrawing %s Lantai 1 – Lantai Roof", name)
}

// TeamStore owns the Team → Topic → SubTopic tree and the navigation cursor.
type TeamStore struct {
	mu       sync.RWMutex
	teams    []models.Team
	selected *models.Selection
	notify   Notifier
	now      func() time.Time
}

func NewTeamStore(notify Notifier) *TeamStore {
	return &TeamStore{
		teams:  make([]models.Team, 0),
		notify: notify,
		now:    time.Now,
	}
}

// Teams returns all teams in insertion order.
func (s *TeamStore) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Team, len(s.teams))
	for i, t := range s.teams {
		out[i] = cloneTeam(t)
	}
	return out
}

func (s *TeamStore) Team(id string) (models.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.team(id)
	if t == nil {
		return models.Team{}, false
	}
	return cloneTeam(*t), true
}

// Locate resolves a sub-topic ref to its team, topic and sub-topic.
func (s *TeamStore) Locate(ref models.SubTopicRef) (models.Team, models.Topic, models.SubTopic, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.subTopic(ref.TeamID, ref.TopicID, ref.SubTopicID)
	if st == nil {
		return models.Team{}, models.Topic{}, models.SubTopic{}, false
	}
	team := cloneTeam(*s.team(ref.TeamID))
	topic := *s.topic(ref.TeamID, ref.TopicID)
	topic.SubTopics = slices.Clone(topic.SubTopics)
	return team, topic, *st, true
}

// AddTeam appends a new team with a fresh id. Topics and sub-topics passed
// without an id get one.
func (s *TeamStore) AddTeam(name string, topics []models.Topic) models.Team {
	team := models.Team{
		ID:        newID(),
		Name:      name,
		Topics:    withIDs(topics),
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.teams = append(s.teams, team)
	s.mu.Unlock()

	s.notify.emit(models.ResourceTeams, models.ActionAdded, team.ID)
	return cloneTeam(team)
}

func (s *TeamStore) UpdateTeam(id string, patch models.TeamPatch) bool {
	s.mu.Lock()
	t := s.team(id)
	if t == nil {
		s.mu.Unlock()
		return false
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Topics != nil {
		t.Topics = withIDs(*patch.Topics)
	}
	s.mu.Unlock()

	s.notify.emit(models.ResourceTeams, models.ActionUpdated, id)
	return true
}

// RemoveTeam drops the team and everything nested under it. Jobs are kept.
func (s *TeamStore) RemoveTeam(id string) bool {
	s.mu.Lock()
	n := len(s.teams)
	s.teams = slices.DeleteFunc(s.teams, func(t models.Team) bool { return t.ID == id })
	removed := len(s.teams) != n
	s.mu.Unlock()

	if removed {
		s.notify.emit(models.ResourceTeams, models.ActionRemoved, id)
	}
	return removed
}

func (s *TeamStore) AddTopic(teamID, name string) (models.Topic, bool) {
	topic := models.Topic{
		ID:        newID(),
		Name:      name,
		SubTopics: []models.SubTopic{},
	}

	s.mu.Lock()
	t := s.team(teamID)
	if t == nil {
		s.mu.Unlock()
		return models.Topic{}, false
	}
	t.Topics = append(t.Topics, topic)
	s.mu.Unlock()

	s.notify.emit(models.ResourceTeams, models.ActionAdded, topic.ID)
	return topic, true
}

func (s *TeamStore) UpdateTopic(teamID, topicID, name string) bool {
	s.mu.Lock()
	tp := s.topic(teamID, topicID)
	if tp == nil {
		s.mu.Unlock()
		return false
	}
	tp.Name = name
	s.mu.Unlock()

	s.notify.emit(models.ResourceTeams, models.ActionUpdated, topicID)
	return true
}

func (s *TeamStore) RemoveTopic(teamID, topicID string) bool {
	s.mu.Lock()
	t := s.team(teamID)
	if t == nil {
		s.mu.Unlock()
		return false
	}
	n := len(t.Topics)
	t.Topics = slices.DeleteFunc(t.Topics, func(tp models.Topic) bool { return tp.ID == topicID })
	removed := len(t.Topics) != n
	s.mu.Unlock()

	if removed {
		s.notify.emit(models.ResourceTeams, models.ActionRemoved, topicID)
	}
	return removed
}

// AddSubTopic appends a sub-topic with a placeholder description.
func (s *TeamStore) AddSubTopic(teamID, topicID, name string) (models.SubTopic, bool) {
	st := models.SubTopic{
		ID:          newID(),
		Name:        name,
		Description: PlaceholderDescription(name),
	}

	s.mu.Lock()
	tp := s.topic(teamID, topicID)
	if tp == nil {
		s.mu.Unlock()
		return models.SubTopic{}, false
	}
	tp.SubTopics = append(tp.SubTopics, st)
	s.mu.Unlock()

	s.notify.emit(models.ResourceTeams, models.ActionAdded, st.ID)
	return st, true
}

// UpdateSubTopic merges patch into the sub-topic. When the cursor points at
// exactly this (team, topic, sub-topic) its copied name and description are
// patched too; a cursor pointing anywhere else is left alone. A missing
// sub-topic changes nothing, not even a stale cursor still pointing at it.
func (s *TeamStore) UpdateSubTopic(teamID, topicID, subTopicID string, patch models.SubTopicPatch) bool {
	s.mu.Lock()
	st := s.subTopic(teamID, topicID, subTopicID)
	if st != nil {
		if patch.Name != nil {
			st.Name = *patch.Name
		}
		if patch.Description != nil {
			st.Description = *patch.Description
		}
	}

	ref := models.SubTopicRef{TeamID: teamID, TopicID: topicID, SubTopicID: subTopicID}
	cursorMoved := false
	if st != nil && s.selected != nil && s.selected.SubTopicRef == ref {
		if patch.Name != nil {
			s.selected.SubTopicName = *patch.Name
		}
		if patch.Description != nil {
			s.selected.SubTopicDescription = *patch.Description
		}
		cursorMoved = patch.Name != nil || patch.Description != nil
	}
	s.mu.Unlock()

	if st != nil {
		s.notify.emit(models.ResourceTeams, models.ActionUpdated, subTopicID)
	}
	if cursorMoved {
		s.notify.emit(models.ResourceSelection, models.ActionUpdated, subTopicID)
	}
	return st != nil
}

func (s *TeamStore) RemoveSubTopic(teamID, topicID, subTopicID string) bool {
	s.mu.Lock()
	tp := s.topic(teamID, topicID)
	if tp == nil {
		s.mu.Unlock()
		return false
	}
	n := len(tp.SubTopics)
	tp.SubTopics = slices.DeleteFunc(tp.SubTopics, func(st models.SubTopic) bool { return st.ID == subTopicID })
	removed := len(tp.SubTopics) != n
	s.mu.Unlock()

	if removed {
		s.notify.emit(models.ResourceTeams, models.ActionRemoved, subTopicID)
	}
	return removed
}

// Selected returns the navigation cursor, or nil when nothing is selected.
func (s *TeamStore) Selected() *models.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSelection(s.selected)
}

// SetSelected moves the cursor. Passing nil clears it.
func (s *TeamStore) SetSelected(sel *models.Selection) {
	s.mu.Lock()
	s.selected = cloneSelection(sel)
	s.mu.Unlock()

	id := ""
	if sel != nil {
		id = sel.SubTopicID
	}
	s.notify.emit(models.ResourceSelection, models.ActionSelected, id)
}

// Restore replaces the whole tree and cursor without notifying.
func (s *TeamStore) Restore(teams []models.Team, sel *models.Selection) {
	restored := make([]models.Team, len(teams))
	for i, t := range teams {
		restored[i] = cloneTeam(t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = restored
	s.selected = cloneSelection(sel)
}

func (s *TeamStore) team(id string) *models.Team {
	for i := range s.teams {
		if s.teams[i].ID == id {
			return &s.teams[i]
		}
	}
	return nil
}

func (s *TeamStore) topic(teamID, topicID string) *models.Topic {
	t := s.team(teamID)
	if t == nil {
		return nil
	}
	for i := range t.Topics {
		if t.Topics[i].ID == topicID {
			return &t.Topics[i]
		}
	}
	return nil
}

func (s *TeamStore) subTopic(teamID, topicID, subTopicID string) *models.SubTopic {
	tp := s.topic(teamID, topicID)
	if tp == nil {
		return nil
	}
	for i := range tp.SubTopics {
		if tp.SubTopics[i].ID == subTopicID {
			return &tp.SubTopics[i]
		}
	}
	return nil
}

func withIDs(topics []models.Topic) []models.Topic {
	out := cloneTopics(topics)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = newID()
		}
		for j := range out[i].SubTopics {
			if out[i].SubTopics[j].ID == "" {
				out[i].SubTopics[j].ID = newID()
			}
		}
	}
	return out
}
