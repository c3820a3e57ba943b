package workspace

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/worktrack/internal/models"
)

// SampleJobs returns the six demo jobs shown on an empty sub-topic page.
func SampleJobs(subTopicName string, ref models.SubTopicRef) []models.Job {
	type sample struct {
		worker   string
		status   models.JobStatus
		priority models.JobPriority
		progress int
		document string
		start    string
		end      string
	}
	samples := []sample{
		{"Bima", models.StatusNotStarted, models.PriorityHigh, 0, "", "07/08/2025", "14/08/2025"},
		{"Bima", models.StatusDone, models.PriorityHigh, 0, "DLT_2.pdf", "01/08/2025", "07/08/2025"},
		{"Hendra", models.StatusInProgress, models.PriorityMedium, 50, "", "03/08/2025", "10/08/2025"},
		{"Hendra", models.StatusNotStarted, models.PriorityMedium, 50, "", "07/08/2025", "14/08/2025"},
		{"Bram", models.StatusDone, models.PriorityLow, 100, "DLT_5.pdf", "01/08/2025", "07/08/2025"},
		{"Bram", models.StatusInProgress, models.PriorityLow, 100, "", "03/08/2025", "10/08/2025"},
	}

	jobs := make([]models.Job, len(samples))
	for i, s := range samples {
		jobs[i] = models.Job{
			Name:        fmt.Sprintf("%s Lantai %d", subTopicName, i+1),
			WorkerName:  s.worker,
			Status:      s.status,
			Priority:    s.priority,
			Progress:    s.progress,
			Document:    s.document,
			StartDate:   models.MustParseDate(s.start),
			EndDate:     models.MustParseDate(s.end),
			SubTopicRef: ref,
		}
	}
	return jobs
}

// DemoSnapshot is the state a fresh workspace starts from when demo seeding
// is on: the Struktur team, its sample jobs and two unread inbox messages
// pointing at them.
func DemoSnapshot(now time.Time) models.Snapshot {
	ref := models.SubTopicRef{
		TeamID:     "struktur",
		TopicID:    "denah-pembalokan",
		SubTopicID: "denah-pembesian",
	}
	const description = "Shopdrawing Denah Pembesian Lantai 1 – Lantai Roof"

	jobs := SampleJobs("Denah Pembesian", ref)
	for i := range jobs {
		jobs[i].ID = uuid.NewString()
	}

	link := &models.MessageLink{
		SubTopicRef:         ref,
		TeamName:            "Struktur",
		TopicName:           "Denah Pembalokan",
		SubTopicName:        "Denah Pembesian",
		SubTopicDescription: description,
	}
	secondLink := *link

	return models.Snapshot{
		Teams: []models.Team{{
			ID:   ref.TeamID,
			Name: "Struktur",
			Topics: []models.Topic{{
				ID:   ref.TopicID,
				Name: "Denah Pembalokan",
				SubTopics: []models.SubTopic{{
					ID:          ref.SubTopicID,
					Name:        "Denah Pembesian",
					Description: description,
				}},
			}},
			CreatedAt: now,
		}},
		Jobs: jobs,
		Messages: []models.InboxMessage{{
			ID:        "2",
			Sender:    "Galang",
			Subject:   "Denah Pembesian Lantai 2",
			Preview:   "Pembesiannya salah @Bima",
			Timestamp: now.Add(-7 * time.Minute),
			Mentions:  []string{"Bima"},
			Link:      &secondLink,
		}, {
			ID:        "1",
			Sender:    "Galang",
			Subject:   "Denah Pembesian Lantai 1",
			Preview:   "Ini direvisi lagi ya mas @Bima",
			Timestamp: now.Add(-15 * time.Minute),
			Mentions:  []string{"Bima"},
			Link:      link,
		}},
		Activity: map[string]models.JobActivity{},
	}
}
