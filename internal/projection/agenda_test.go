package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskflow/internal/models"
)

var now = time.Date(2026, time.October, 16, 14, 30, 0, 0, time.UTC)

func due(t models.Task, at time.Time) models.Task {
	t.Due = &at
	return t
}

func TestGroupByDay(t *testing.T) {
	in := []models.Task{
		due(task("today-evening", models.StatusPending, models.PriorityHigh), time.Date(2026, time.October, 16, 18, 0, 0, 0, time.UTC)),
		due(task("tomorrow", models.StatusPending, models.PriorityLow), time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)),
		due(task("late", models.StatusPending, models.PriorityLow), time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)),
		due(task("done-late", models.StatusCompleted, models.PriorityLow), time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)),
		due(task("far", models.StatusPending, models.PriorityLow), time.Date(2026, time.November, 30, 0, 0, 0, 0, time.UTC)),
		task("undated", models.StatusPending, models.PriorityLow),
	}

	groups := GroupByDay(in, now, 3)
	require.Len(t, groups, 6)

	assert.Equal(t, GroupOverdue, groups[0].Kind)
	assert.Equal(t, []string{"late"}, ids(groups[0].Tasks))

	assert.Equal(t, "Today", groups[1].Label)
	assert.Equal(t, []string{"today-evening"}, ids(groups[1].Tasks))
	assert.Equal(t, "Tomorrow", groups[2].Label)
	assert.Equal(t, []string{"tomorrow"}, ids(groups[2].Tasks))
	assert.Equal(t, GroupDay, groups[3].Kind)
	assert.Empty(t, groups[3].Tasks)

	assert.Equal(t, GroupLater, groups[4].Kind)
	assert.Equal(t, []string{"far"}, ids(groups[4].Tasks))
	assert.Equal(t, GroupNoDate, groups[5].Kind)
	assert.Equal(t, []string{"undated"}, ids(groups[5].Tasks))
}

func TestGroupByDayIgnoresLabels(t *testing.T) {
	// a title that looks like a relative date must not influence grouping
	tricky := due(task("Today, 18:00", models.StatusPending, models.PriorityLow), time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC))

	groups := GroupByDay([]models.Task{tricky}, now, 3)
	require.Len(t, groups, 3)
	assert.Empty(t, groups[0].Tasks)
	assert.Equal(t, []string{"Today, 18:00"}, ids(groups[2].Tasks))
}

func TestGroupByDayUsesLocalDays(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	localNow := time.Date(2026, time.October, 16, 21, 0, 0, 0, loc) // 02:00 UTC on the 17th
	at := time.Date(2026, time.October, 17, 1, 0, 0, 0, time.UTC)   // 20:00 local on the 16th

	groups := GroupByDay([]models.Task{due(task("x", models.StatusPending, models.PriorityLow), at)}, localNow, 1)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"x"}, ids(groups[0].Tasks))
}

func TestDueLabel(t *testing.T) {
	at := func(m time.Month, d, h, min int) *time.Time {
		v := time.Date(2026, m, d, h, min, 0, 0, time.UTC)
		return &v
	}
	tests := []struct {
		name string
		due  *time.Time
		want string
	}{
		{"none", nil, "No date"},
		{"today all day", at(time.October, 16, 0, 0), "Today"},
		{"today with time", at(time.October, 16, 18, 0), "Today, 18:00"},
		{"tomorrow", at(time.October, 17, 0, 0), "Tomorrow"},
		{"yesterday", at(time.October, 15, 0, 0), "Yesterday"},
		{"later", at(time.October, 20, 10, 5), "Tue Oct 20, 10:05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueLabel(tt.due, now))
		})
	}

	nextYear := time.Date(2027, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Sat Jan 2, 2027", DueLabel(&nextYear, now))
}

func TestDayLabelYearUsesLocalDate(t *testing.T) {
	east := time.FixedZone("UTC+10", 10*60*60)
	west := time.FixedZone("UTC-5", -5*60*60)

	tests := []struct {
		name string
		day  time.Time
		now  time.Time
		want string
	}{
		{
			name: "utc year behind",
			day:  time.Date(2026, time.December, 31, 16, 0, 0, 0, time.UTC),
			now:  time.Date(2027, time.January, 5, 12, 0, 0, 0, east),
			want: "Fri Jan 1",
		},
		{
			name: "utc year ahead",
			day:  time.Date(2027, time.January, 1, 3, 0, 0, 0, time.UTC),
			now:  time.Date(2026, time.December, 20, 12, 0, 0, 0, west),
			want: "Thu Dec 31",
		},
		{
			name: "other year",
			day:  time.Date(2027, time.March, 3, 0, 0, 0, 0, west),
			now:  time.Date(2026, time.December, 20, 12, 0, 0, 0, west),
			want: "Wed Mar 3, 2027",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayLabel(tt.day, tt.now))
		})
	}
}
