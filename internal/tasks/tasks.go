// Package tasks owns the task collection and its mutations.
package tasks

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tgienger/taskflow/internal/logging"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/persist"
)

// DefaultTitle is used when a task is added without a title
const DefaultTitle = "New task"

// Store is the canonical task collection. Every mutation replaces the
// slice held by the persisted store, so slices handed out earlier are never
// modified behind the caller's back.
type Store struct {
	persisted *persist.Store[[]models.Task]
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the id generator
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a Store over a persisted collection
func New(persisted *persist.Store[[]models.Task], opts ...Option) *Store {
	s := &Store{
		persisted: persisted,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// All returns a copy of the collection in stored order
func (s *Store) All() []models.Task {
	current := s.persisted.Get()
	out := make([]models.Task, len(current))
	copy(out, current)
	return out
}

// Len returns the number of tasks
func (s *Store) Len() int { return len(s.persisted.Get()) }

// Get looks up a task by id
func (s *Store) Get(id string) (models.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.persisted.Get()[i], true
}

// Add creates a pending, low priority task due today and puts it first
func (s *Store) Add(title string) models.Task {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	now := s.now()
	due := StartOfDay(now)
	task := models.Task{
		ID:        s.uniqueID(),
		Title:     title,
		Status:    models.StatusPending,
		Priority:  models.PriorityLow,
		Due:       &due,
		CreatedAt: now,
	}

	current := s.persisted.Get()
	next := make([]models.Task, 0, len(current)+1)
	next = append(next, task)
	next = append(next, current...)
	s.persisted.Set(next)

	s.logger.Debug("task added", "id", task.ID)
	return task
}

// Toggle flips the status of the task with id. It reports false if no such
// task exists.
func (s *Store) Toggle(id string) (models.Task, bool) {
	i := s.index(id)
	if i < 0 {
		s.logger.Debug("toggle of unknown task ignored", "id", id)
		return models.Task{}, false
	}
	next := s.All()
	next[i].Status = next[i].Status.Toggle()
	s.persisted.Set(next)
	return next[i], true
}

// Edit replaces the stored task sharing task.ID. CreatedAt is kept from the
// stored task and a blank title keeps the stored title. It reports false if
// no such task exists.
func (s *Store) Edit(task models.Task) bool {
	i := s.index(task.ID)
	if i < 0 {
		s.logger.Debug("edit of unknown task ignored", "id", task.ID)
		return false
	}
	next := s.All()
	stored := next[i]

	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		task.Title = stored.Title
	}
	if !task.Status.Valid() {
		task.Status = models.StatusPending
	}
	if !task.Priority.Valid() {
		task.Priority = models.PriorityLow
	}
	task.CreatedAt = stored.CreatedAt

	next[i] = task
	s.persisted.Set(next)
	return true
}

// Remove deletes the task with id. It reports false if no such task exists.
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	current := s.persisted.Get()
	next := make([]models.Task, 0, len(current)-1)
	next = append(next, current[:i]...)
	next = append(next, current[i+1:]...)
	s.persisted.Set(next)

	s.logger.Debug("task removed", "id", id)
	return true
}

func (s *Store) index(id string) int {
	for i, t := range s.persisted.Get() {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id
		}
	}
}

// StartOfDay returns midnight of t's day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
