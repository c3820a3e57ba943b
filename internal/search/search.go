// Package search finds teams, topics, sub-topics and jobs by a free-text
// query. It is a pure function over snapshots of the stores.
package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lalith-99/worktrack/internal/models"
)

type Kind string

const (
	KindTeam     Kind = "team"
	KindTopic    Kind = "topic"
	KindSubTopic Kind = "subtopic"
	KindJob      Kind = "job"
)

// Result is one search hit. The concrete type is TeamResult, TopicResult,
// SubTopicResult or JobResult.
type Result interface {
	Kind() Kind
	// Target returns where the UI navigates when the hit is clicked. Only
	// sub-topic and job hits are navigable.
	Target() (models.Selection, bool)
}

type TeamResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TopicCount int    `json:"topic_count"`
}

func (TeamResult) Kind() Kind { return KindTeam }
func (TeamResult) Target() (models.Selection, bool) { return models.Selection{}, false }
func (r TeamResult) Metadata() string { return fmt.Sprintf("%d topik", r.TopicCount) }

type TopicResult struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TeamID        string `json:"team_id"`
	TeamName      string `json:"team_name"`
	SubTopicCount int    `json:"sub_topic_count"`
}

func (TopicResult) Kind() Kind { return KindTopic }
func (TopicResult) Target() (models.Selection, bool) { return models.Selection{}, false }
func (r TopicResult) Metadata() string { return fmt.Sprintf("%d sub topik", r.SubTopicCount) }

type SubTopicResult struct {
	Location models.Selection `json:"location"`
}

func (SubTopicResult) Kind() Kind { return KindSubTopic }
func (r SubTopicResult) Target() (models.Selection, bool) { return r.Location, true }

type JobResult struct {
	Job      models.Job       `json:"job"`
	Location models.Selection `json:"location"`
}

func (JobResult) Kind() Kind { return KindJob }

// Target navigates to the job's sub-topic. The job itself is not preselected.
func (r JobResult) Target() (models.Selection, bool) { return r.Location, true }

// Run matches query case-insensitively as a substring against team names,
// topic names, sub-topic names and descriptions, and job names and worker
// names. Results come in discovery order: the hierarchy depth first, then
// jobs in store order. Jobs whose sub-topic no longer exists are skipped.
// A blank query matches nothing. Otherwise the query is matched as typed,
// surrounding spaces included.
func Run(query string, teams []models.Team, jobs []models.Job) []Result {
	results := make([]Result, 0)
	if strings.TrimSpace(query) == "" {
		return results
	}
	q := strings.ToLower(query)
	match := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}

	locations := make(map[models.SubTopicRef]models.Selection)
	for _, team := range teams {
		if match(team.Name) {
			results = append(results, TeamResult{ID: team.ID, Title: team.Name, TopicCount: len(team.Topics)})
		}
		for _, topic := range team.Topics {
			if match(topic.Name) {
				results = append(results, TopicResult{
					ID:            topic.ID,
					Title:         topic.Name,
					TeamID:        team.ID,
					TeamName:      team.Name,
					SubTopicCount: len(topic.SubTopics),
				})
			}
			for _, st := range topic.SubTopics {
				loc := models.Selection{
					SubTopicRef:         models.SubTopicRef{TeamID: team.ID, TopicID: topic.ID, SubTopicID: st.ID},
					SubTopicName:        st.Name,
					SubTopicDescription: st.Description,
					TeamName:            team.Name,
					TopicName:           topic.Name,
				}
				if _, seen := locations[loc.SubTopicRef]; !seen {
					locations[loc.SubTopicRef] = loc
				}
				if match(st.Name, st.Description) {
					results = append(results, SubTopicResult{Location: loc})
				}
			}
		}
	}

	for _, job := range jobs {
		if !match(job.Name, job.WorkerName) {
			continue
		}
		loc, ok := locations[job.SubTopicRef]
		if !ok {
			continue
		}
		results = append(results, JobResult{Job: job, Location: loc})
	}
	return results
}

// MarshalResults renders results as a JSON array where every element carries
// a "type" discriminator next to the hit's own fields.
func MarshalResults(results []Result) ([]byte, error) {
	out := make([]json.RawMessage, 0, len(results))
	for _, r := range results {
		b, err := marshalResult(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return json.Marshal(out)
}

func marshalResult(r Result) ([]byte, error) {
	envelope := map[string]any{
		"type":      r.Kind(),
		"navigable": false,
	}
	switch v := r.(type) {
	case TeamResult:
		envelope["id"] = v.ID
		envelope["title"] = v.Title
		envelope["metadata"] = v.Metadata()
	case TopicResult:
		envelope["id"] = v.ID
		envelope["title"] = v.Title
		envelope["subtitle"] = v.TeamName
		envelope["metadata"] = v.Metadata()
		envelope["team_id"] = v.TeamID
	case SubTopicResult:
		envelope["id"] = v.Location.SubTopicID
		envelope["title"] = v.Location.SubTopicName
		envelope["subtitle"] = v.Location.TeamName + " > " + v.Location.TopicName
		envelope["metadata"] = v.Location.SubTopicDescription
	case JobResult:
		envelope["id"] = v.Job.ID
		envelope["title"] = v.Job.Name
		envelope["subtitle"] = v.Location.TeamName + " > " + v.Location.TopicName + " > " + v.Location.SubTopicName
		envelope["metadata"] = v.Job.WorkerName + " · " + string(v.Job.Status)
	default:
		return nil, fmt.Errorf("unknown search result %T", r)
	}
	if target, ok := r.Target(); ok {
		envelope["navigable"] = true
		envelope["target"] = target
	}
	return json.Marshal(envelope)
}
