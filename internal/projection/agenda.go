package projection

import (
	"time"

	"github.com/tgienger/taskflow/internal/models"
)

// GroupKind tells what an agenda group covers
type GroupKind int

const (
	GroupOverdue GroupKind = iota
	GroupDay
	GroupLater
	GroupNoDate
)

// DayGroup is one section of the calendar agenda
type DayGroup struct {
	Kind  GroupKind
	Day   time.Time // midnight of the day, zero unless Kind is GroupDay
	Label string
	Tasks []models.Task
}

// GroupByDay buckets tasks into an agenda starting today and spanning days
// days. Completed tasks due in the past are left out of Overdue. Comparisons
// use calendar days in now's location.
func GroupByDay(tasks []models.Task, now time.Time, days int) []DayGroup {
	if days < 1 {
		days = 1
	}
	today := dayOf(now, now.Location())
	window := make([]DayGroup, days)
	for i := range window {
		day := today.AddDate(0, 0, i)
		window[i] = DayGroup{Kind: GroupDay, Day: day, Label: DayLabel(day, now)}
	}
	overdue := DayGroup{Kind: GroupOverdue, Label: "Overdue"}
	later := DayGroup{Kind: GroupLater, Label: "Later"}
	undated := DayGroup{Kind: GroupNoDate, Label: "No date"}

	for _, t := range tasks {
		if t.Due == nil {
			undated.Tasks = append(undated.Tasks, t)
			continue
		}
		day := dayOf(*t.Due, now.Location())
		offset := daysBetween(today, day)
		switch {
		case offset < 0:
			if !t.Completed() {
				overdue.Tasks = append(overdue.Tasks, t)
			}
		case offset < days:
			window[offset].Tasks = append(window[offset].Tasks, t)
		default:
			later.Tasks = append(later.Tasks, t)
		}
	}

	var groups []DayGroup
	if len(overdue.Tasks) > 0 {
		groups = append(groups, overdue)
	}
	groups = append(groups, window...)
	if len(later.Tasks) > 0 {
		groups = append(groups, later)
	}
	if len(undated.Tasks) > 0 {
		groups = append(groups, undated)
	}
	return groups
}

// DayLabel names day relative to now: Today, Tomorrow, Yesterday, or a date
func DayLabel(day, now time.Time) string {
	switch daysBetween(dayOf(now, now.Location()), dayOf(day, now.Location())) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	case -1:
		return "Yesterday"
	}
	local := day.In(now.Location())
	if local.Year() != now.Year() {
		return local.Format("Mon Jan 2, 2006")
	}
	return local.Format("Mon Jan 2")
}

// DueLabel formats a due date for display. A due time of midnight is shown
// as the day alone.
func DueLabel(due *time.Time, now time.Time) string {
	if due == nil {
		return "No date"
	}
	local := due.In(now.Location())
	label := DayLabel(local, now)
	if local.Hour() != 0 || local.Minute() != 0 {
		label += ", " + local.Format("15:04")
	}
	return label
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from a to b, both at midnight
func daysBetween(a, b time.Time) int {
	// UTC midnights are always 24h apart.
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
