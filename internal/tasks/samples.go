package tasks

import (
	"time"

	"github.com/tgienger/taskflow/internal/models"
)

// SampleTasks is the collection a first run starts with
func SampleTasks(now time.Time) []models.Task {
	today := StartOfDay(now)
	at := func(days, hour, minute int) *time.Time {
		t := today.AddDate(0, 0, days).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		return &t
	}
	created := func(days int) time.Time {
		return today.AddDate(0, 0, -days).Add(9 * time.Hour)
	}

	return []models.Task{
		{
			ID:          "1",
			Title:       "Buy ingredients for dinner",
			Description: "Fresh vegetables and chicken.",
			Status:      models.StatusPending,
			Priority:    models.PriorityHigh,
			Due:         at(0, 18, 0),
			CreatedAt:   created(4),
		},
		{
			ID:          "2",
			Title:       "Review design proposal",
			Description: "Check colors and typography with the team.",
			Status:      models.StatusPending,
			Priority:    models.PriorityLow,
			Due:         at(1, 0, 0),
			CreatedAt:   created(3),
		},
		{
			ID:          "3",
			Title:       "Call the doctor",
			Description: "Annual checkup appointment.",
			Status:      models.StatusPending,
			Priority:    models.PriorityMedium,
			Due:         at(3, 10, 0),
			CreatedAt:   created(2),
		},
		{
			ID:          "4",
			Title:       "Pay internet bill",
			Description: "Due this weekend.",
			Status:      models.StatusCompleted,
			Priority:    models.PriorityHigh,
			Due:         at(-1, 0, 0),
			CreatedAt:   created(6),
		},
		{
			ID:          "5",
			Title:       "Send email to the team",
			Description: "Weekly progress summary.",
			Status:      models.StatusCompleted,
			Priority:    models.PriorityLow,
			Due:         at(-2, 0, 0),
			CreatedAt:   created(8),
		},
	}
}
