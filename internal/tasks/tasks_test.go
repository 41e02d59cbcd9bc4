package tasks

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/persist"
	"github.com/tgienger/taskflow/internal/storage"
)

var fixedNow = time.Date(2026, time.October, 16, 14, 30, 0, 0, time.UTC)

func newStore(t *testing.T, opts ...Option) (*Store, storage.Backend) {
	t.Helper()
	backend := storage.NewMemory()
	p := persist.Open(backend, "taskflow-tasks", []models.Task{}, nil)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(p, opts...), backend
}

func TestAddDefaults(t *testing.T) {
	s, _ := newStore(t)

	task := s.Add("  Buy milk ")
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.PriorityLow, task.Priority)
	assert.Equal(t, fixedNow, task.CreatedAt)
	require.NotNil(t, task.Due)
	assert.Equal(t, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC), *task.Due)

	blank := s.Add("")
	assert.Equal(t, DefaultTitle, blank.Title)
}

func TestAddPrepends(t *testing.T) {
	s, _ := newStore(t)
	first := s.Add("first")
	second := s.Add("second")

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestAddIDsAreUnique(t *testing.T) {
	s, _ := newStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		task := s.Add(fmt.Sprintf("task %d", i))
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
}

func TestAddRedrawsCollidingIDs(t *testing.T) {
	ids := []string{"same", "same", "same", "other"}
	next := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	s, _ := newStore(t, WithIDs(next))

	a := s.Add("a")
	b := s.Add("b")
	assert.Equal(t, "same", a.ID)
	assert.Equal(t, "other", b.ID)
}

func TestToggleTwiceRestores(t *testing.T) {
	s, _ := newStore(t)
	task := s.Add("toggle me")

	toggled, ok := s.Toggle(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, toggled.Status)

	restored, ok := s.Toggle(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, restored.Status)
}

func TestToggleUnknownIsNoop(t *testing.T) {
	s, _ := newStore(t)
	s.Add("only")
	before := s.All()

	_, ok := s.Toggle("missing")
	assert.False(t, ok)
	assert.Equal(t, before, s.All())
}

func TestEditReplacesInFull(t *testing.T) {
	s, _ := newStore(t)
	task := s.Add("draft")

	due := time.Date(2026, time.October, 20, 10, 0, 0, 0, time.UTC)
	edited := task
	edited.Title = "Final"
	edited.Description = "with notes"
	edited.Priority = models.PriorityHigh
	edited.Due = &due
	edited.CreatedAt = time.Time{}

	require.True(t, s.Edit(edited))
	got, ok := s.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, "with notes", got.Description)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, due, *got.Due)
	assert.Equal(t, task.CreatedAt, got.CreatedAt, "createdAt is immutable")
}

func TestEditKeepsTitleWhenBlank(t *testing.T) {
	s, _ := newStore(t)
	task := s.Add("keep me")

	task.Title = "   "
	task.Priority = "urgent"
	require.True(t, s.Edit(task))

	got, _ := s.Get(task.ID)
	assert.Equal(t, "keep me", got.Title)
	assert.Equal(t, models.PriorityLow, got.Priority)
}

func TestEditUnknownIsNoop(t *testing.T) {
	s, _ := newStore(t)
	s.Add("only")

	assert.False(t, s.Edit(models.Task{ID: "missing", Title: "ghost"}))
	assert.Equal(t, 1, s.Len())
}

func TestRemove(t *testing.T) {
	s, _ := newStore(t)
	a := s.Add("a")
	b := s.Add("b")

	assert.True(t, s.Remove(a.ID))
	assert.False(t, s.Remove(a.ID))

	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}

func TestMutationsArePersisted(t *testing.T) {
	s, backend := newStore(t)
	task := s.Add("Buy milk")
	s.Toggle(task.ID)

	reloaded := New(persist.Open(backend, "taskflow-tasks", []models.Task{}, nil))
	got, ok := reloaded.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestAllReturnsCopy(t *testing.T) {
	s, _ := newStore(t)
	s.Add("original")

	all := s.All()
	all[0].Title = "mutated"

	assert.Equal(t, "original", s.All()[0].Title)
}

func TestSampleTasks(t *testing.T) {
	samples := SampleTasks(fixedNow)
	require.Len(t, samples, 5)

	ids := make(map[string]bool)
	for _, task := range samples {
		assert.False(t, ids[task.ID])
		ids[task.ID] = true
		assert.True(t, task.Status.Valid())
		assert.True(t, task.Priority.Valid())
	}
}
