package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskflow/internal/models"
)

func task(id string, status models.Status, priority models.Priority) models.Task {
	return models.Task{ID: id, Title: id, Status: status, Priority: priority}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

var mixed = []models.Task{
	task("a", models.StatusCompleted, models.PriorityHigh),
	task("b", models.StatusPending, models.PriorityLow),
	task("c", models.StatusCompleted, models.PriorityLow),
	task("d", models.StatusPending, models.PriorityHigh),
	task("e", models.StatusPending, models.PriorityMedium),
}

func TestFilter(t *testing.T) {
	tests := []struct {
		mode FilterMode
		want []string
	}{
		{FilterAll, []string{"a", "b", "c", "d", "e"}},
		{FilterPending, []string{"b", "d", "e"}},
		{FilterCompleted, []string{"a", "c"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(mixed, tt.mode)))
		})
	}
}

func TestParseFilter(t *testing.T) {
	mode, ok := ParseFilter("pending")
	assert.True(t, ok)
	assert.Equal(t, FilterPending, mode)

	mode, ok = ParseFilter("")
	assert.True(t, ok)
	assert.Equal(t, FilterAll, mode)

	mode, ok = ParseFilter("urgent")
	assert.False(t, ok)
	assert.Equal(t, FilterAll, mode)

	assert.Equal(t, FilterAll, FilterCompleted.Next())
}

func TestSortForDisplayIsStable(t *testing.T) {
	sorted := SortForDisplay(mixed)
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, ids(sorted))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(mixed), "input untouched")
}

func TestSortForDisplayProperty(t *testing.T) {
	// every pattern of five statuses
	for mask := 0; mask < 32; mask++ {
		var in []models.Task
		for i := 0; i < 5; i++ {
			status := models.StatusPending
			if mask&(1<<i) != 0 {
				status = models.StatusCompleted
			}
			in = append(in, task(string(rune('a'+i)), status, models.PriorityLow))
		}
		out := SortForDisplay(in)
		require.Len(t, out, len(in))

		seenCompleted := false
		for _, task := range out {
			if task.Completed() {
				seenCompleted = true
			} else {
				assert.False(t, seenCompleted, "pending after completed for mask %b", mask)
			}
		}
		assert.Equal(t, ids(Filter(in, FilterPending)), ids(Filter(out, FilterPending)))
		assert.Equal(t, ids(Filter(in, FilterCompleted)), ids(Filter(out, FilterCompleted)))
	}
}

func TestCountsEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Counts(nil))
	assert.Equal(t, Summary{}, Counts([]models.Task{}))
}

func TestCounts(t *testing.T) {
	s := Counts(mixed)
	assert.Equal(t, Summary{Total: 5, Pending: 3, Completed: 2, Urgent: 1, CompletionPercent: 40}, s)

	third := Counts([]models.Task{
		task("a", models.StatusCompleted, models.PriorityLow),
		task("b", models.StatusPending, models.PriorityLow),
		task("c", models.StatusPending, models.PriorityLow),
	})
	assert.Equal(t, 33, third.CompletionPercent)

	twoThirds := Counts([]models.Task{
		task("a", models.StatusCompleted, models.PriorityLow),
		task("b", models.StatusCompleted, models.PriorityLow),
		task("c", models.StatusPending, models.PriorityLow),
	})
	assert.Equal(t, 67, twoThirds.CompletionPercent)
}
