// Package projection derives display views from the task collection.
// Every function is pure: inputs are never modified.
package projection

import (
	"math"
	"slices"

	"github.com/tgienger/taskflow/internal/models"
)

// FilterMode selects which tasks a list shows
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterPending   FilterMode = "pending"
	FilterCompleted FilterMode = "completed"
)

// ParseFilter maps a name to a FilterMode, defaulting to FilterAll
func ParseFilter(name string) (FilterMode, bool) {
	switch FilterMode(name) {
	case FilterAll, "":
		return FilterAll, true
	case FilterPending:
		return FilterPending, true
	case FilterCompleted:
		return FilterCompleted, true
	}
	return FilterAll, false
}

// Next cycles all -> pending -> completed -> all
func (m FilterMode) Next() FilterMode {
	switch m {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Filter returns the tasks matching mode in their original order
func Filter(tasks []models.Task, mode FilterMode) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		switch mode {
		case FilterPending:
			if t.Status != models.StatusPending {
				continue
			}
		case FilterCompleted:
			if t.Status != models.StatusCompleted {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// SortForDisplay places pending tasks before completed ones, keeping the
// original relative order inside each group.
func SortForDisplay(tasks []models.Task) []models.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b models.Task) int {
		return rank(a) - rank(b)
	})
	return out
}

func rank(t models.Task) int {
	if t.Status == models.StatusCompleted {
		return 1
	}
	return 0
}

// Summary aggregates a task collection
type Summary struct {
	Total             int `json:"total"`
	Pending           int `json:"pending"`
	Completed         int `json:"completed"`
	Urgent            int `json:"urgent"` // pending and high priority
	CompletionPercent int `json:"completionPercent"`
}

// Counts computes the Summary of tasks. An empty collection is 0% complete.
func Counts(tasks []models.Task) Summary {
	var s Summary
	for _, t := range tasks {
		s.Total++
		switch t.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusPending:
			s.Pending++
			if t.Priority == models.PriorityHigh {
				s.Urgent++
			}
		}
	}
	if s.Total > 0 {
		s.CompletionPercent = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}
