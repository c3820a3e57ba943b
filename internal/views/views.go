// Package views derives the table, kanban and chart layouts from a list of
// jobs. Nothing here mutates state.
package views

import (
	"math"

	"github.com/lalith-99/worktrack/internal/models"
)

const PageSize = 10

// TablePage is one page of the jobs table.
type TablePage struct {
	Jobs         []models.Job `json:"jobs"`
	Page         int          `json:"page"`
	TotalPages   int          `json:"total_pages"`
	Total        int          `json:"total"`
	ShowingStart int          `json:"showing_start"`
	ShowingEnd   int          `json:"showing_end"`
}

// Table slices jobs into pages of PageSize. Pages are 1-based; a page past
// the end is clamped to the last page and anything below 1 becomes 1.
func Table(jobs []models.Job, page int) TablePage {
	total := len(jobs)
	totalPages := int(math.Ceil(float64(total) / PageSize))
	page = max(min(page, totalPages), 1)

	start := min((page-1)*PageSize, total)
	end := min(start+PageSize, total)

	showingStart := 0
	if total > 0 {
		showingStart = start + 1
	}
	return TablePage{
		Jobs:         append(make([]models.Job, 0, end-start), jobs[start:end]...),
		Page:         page,
		TotalPages:   totalPages,
		Total:        total,
		ShowingStart: showingStart,
		ShowingEnd:   end,
	}
}

// Column is one kanban column.
type Column struct {
	Status models.JobStatus `json:"status"`
	Jobs   []models.Job     `json:"jobs"`
}

// Board groups jobs into one column per status, in status order. Every
// column is present even when empty. Jobs with an unknown status are left
// off the board.
func Board(jobs []models.Job) []Column {
	statuses := models.Statuses()
	cols := make([]Column, len(statuses))
	index := make(map[models.JobStatus]int, len(statuses))
	for i, st := range statuses {
		cols[i] = Column{Status: st, Jobs: make([]models.Job, 0)}
		index[st] = i
	}
	for _, j := range jobs {
		if i, ok := index[j.Status]; ok {
			cols[i].Jobs = append(cols[i].Jobs, j)
		}
	}
	return cols
}

// Slice is one wedge of the status pie chart.
type Slice struct {
	Status     models.JobStatus `json:"status"`
	Count      int              `json:"count"`
	Percentage float64          `json:"percentage"`
}

// Distribution counts jobs per status. Statuses with no jobs are omitted;
// percentages are rounded to one decimal.
func Distribution(jobs []models.Job) []Slice {
	counts := make(map[models.JobStatus]int)
	for _, j := range jobs {
		counts[j.Status]++
	}

	slices := make([]Slice, 0)
	for _, st := range models.Statuses() {
		n := counts[st]
		if n == 0 {
			continue
		}
		pct := math.Round(float64(n)/float64(len(jobs))*1000) / 10
		slices = append(slices, Slice{Status: st, Count: n, Percentage: pct})
	}
	return slices
}

// WithStatus is the chart drill-down: the jobs of one status.
func WithStatus(jobs []models.Job, status models.JobStatus) []models.Job {
	out := make([]models.Job, 0)
	for _, j := range jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out
}
