package views

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/app"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/session"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

// LoggedIn is sent once sign-in succeeded and the gate is open
type LoggedIn struct {
	User models.AuthUser
}

// SessionExpired is sent when the auth service rejected the session during
// an action. The session has already been cleared.
type SessionExpired struct {
	Message string
}

const toastDuration = 3 * time.Second

type toastExpiredMsg struct {
	id int
}

func expireToast(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// errorMessage picks the text to show for err
func errorMessage(err error) string {
	var sessErr *session.Error
	switch {
	case errors.As(err, &sessErr):
		return sessErr.Message
	case errors.Is(err, session.ErrSessionExpired):
		return "Your session has expired, please sign in again"
	case errors.Is(err, app.ErrLocked):
		return "Please sign in"
	}
	return session.MsgUnknown
}

func priorityBadge(s *styles.Styles, p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return s.PriorityHigh.Render("● high")
	case models.PriorityMedium:
		return s.PriorityMed.Render("● medium")
	}
	return s.PriorityLow.Render("● low")
}

func checkbox(t models.Task) string {
	if t.Completed() {
		return "[x]"
	}
	return "[ ]"
}

// centered places content in the middle of the content area
func centered(content string, width, height int) string {
	contentWidth := styles.ContentWidth(width)
	placed := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(placed, width, height)
}
