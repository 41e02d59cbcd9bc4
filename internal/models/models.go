package models

import "time"

// Status is the completion state of a task
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggle returns the opposite status
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Priority ranks how urgent a task is
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Next cycles low -> medium -> high -> low
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// Task represents a single task
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Due         *time.Time `json:"dueDate,omitempty"` // midnight means all day
	CreatedAt   time.Time  `json:"createdAt"`
}

// Completed reports whether the task is done
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// UserProfile is the display identity shown in the app. It is seeded from
// the authenticated user at login but edited independently.
type UserProfile struct {
	Name      string `json:"name"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl"`
}

// FullName joins name and last name
func (p UserProfile) FullName() string {
	if p.LastName == "" {
		return p.Name
	}
	if p.Name == "" {
		return p.LastName
	}
	return p.Name + " " + p.LastName
}

// AuthUser is the identity returned by the auth service
type AuthUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Session pairs a bearer token with the identity it was issued for
type Session struct {
	Token string    `json:"token"`
	User  *AuthUser `json:"user"`
}

// Valid reports whether both halves of the session are present
func (s Session) Valid() bool {
	return s.Token != "" && s.User != nil && s.User.ID != ""
}
