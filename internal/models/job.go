package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// JobStatus is a free-form workflow label. Any status may follow any other.
type JobStatus string

const (
	StatusNotStarted JobStatus = "Belum dimulai"
	StatusInProgress JobStatus = "Dikerjakan"
	StatusDone       JobStatus = "Selesai"
	StatusSubmitted  JobStatus = "Pengajuan"
	StatusApproved   JobStatus = "Approved"
)

// Statuses returns every status in board column order.
func Statuses() []JobStatus {
	return []JobStatus{
		StatusNotStarted,
		StatusInProgress,
		StatusDone,
		StatusSubmitted,
		StatusApproved,
	}
}

func (s JobStatus) Valid() bool {
	for _, st := range Statuses() {
		if s == st {
			return true
		}
	}
	return false
}

type JobPriority string

const (
	PriorityHigh   JobPriority = "Tinggi"
	PriorityMedium JobPriority = "Sedang"
	PriorityLow    JobPriority = "Rendah"
)

func (p JobPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Job is a trackable unit of work. It is stored flat, next to the
// hierarchy, and only logically belongs to the sub-topic its embedded
// SubTopicRef names. Nothing checks that the sub-topic exists.
type Job struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	WorkerName string      `json:"worker_name"`
	Status     JobStatus   `json:"status"`
	Priority   JobPriority `json:"priority"`
	Progress   int         `json:"progress"`
	Document   string      `json:"document"`
	StartDate  Date        `json:"start_date"`
	EndDate    Date        `json:"end_date"`
	SubTopicRef
}

// JobPatch is a shallow update of a job. The id is not part of it.
type JobPatch struct {
	Name       *string      `json:"name"`
	WorkerName *string      `json:"worker_name"`
	Status     *JobStatus   `json:"status"`
	Priority   *JobPriority `json:"priority"`
	Progress   *int         `json:"progress" binding:"omitempty,min=0,max=100"`
	Document   *string      `json:"document"`
	StartDate  *Date        `json:"start_date"`
	EndDate    *Date        `json:"end_date"`
	TeamID     *string      `json:"team_id"`
	TopicID    *string      `json:"topic_id"`
	SubTopicID *string      `json:"sub_topic_id"`
}

// Apply merges the set fields of p into j.
func (p JobPatch) Apply(j *Job) {
	if p.Name != nil {
		j.Name = *p.Name
	}
	if p.WorkerName != nil {
		j.WorkerName = *p.WorkerName
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.Priority != nil {
		j.Priority = *p.Priority
	}
	if p.Progress != nil {
		j.Progress = ClampProgress(*p.Progress)
	}
	if p.Document != nil {
		j.Document = *p.Document
	}
	if p.StartDate != nil {
		j.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		j.EndDate = *p.EndDate
	}
	if p.TeamID != nil {
		j.TeamID = *p.TeamID
	}
	if p.TopicID != nil {
		j.TopicID = *p.TopicID
	}
	if p.SubTopicID != nil {
		j.SubTopicID = *p.SubTopicID
	}
}

// ClampProgress keeps progress inside [0, 100].
func ClampProgress(p int) int {
	return min(max(p, 0), 100)
}

const (
	displayDateLayout = "02/01/2006"
	formDateLayout    = "2006-01-02"
)

// Date is a calendar date without time of day. It renders as DD/MM/YYYY,
// the format the job table shows, and also accepts the YYYY-MM-DD format
// date inputs produce.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses DD/MM/YYYY or YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	layout := displayDateLayout
	if strings.Contains(s, "-") {
		layout = formDateLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals in seeds and tests.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String renders DD/MM/YYYY, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(displayDateLayout)
}

// FormValue renders YYYY-MM-DD for date inputs.
func (d Date) FormValue() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(formDateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
