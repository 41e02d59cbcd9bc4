package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/app"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/ui/keys"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

const (
	editTitle = iota
	editDesc
	editPriority
	editDue
	editStatus
	editSave
	editFieldCount
)

// EditView edits a single task
type EditView struct {
	state  *app.App
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	task     models.Task
	title    textinput.Model
	desc     textarea.Model
	due      textinput.Model
	priority models.Priority
	status   models.Status
	focusIdx int
	err      string

	confirmingDelete bool
}

// NewEditView creates the task editor
func NewEditView(state *app.App, s *styles.Styles) *EditView {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 1000
	desc.SetWidth(50)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD [HH:MM]"
	due.CharLimit = 16

	return &EditView{
		state:  state,
		styles: s,
		keys:   keys.DefaultKeyMap(),
		title:  title,
		desc:   desc,
		due:    due,
	}
}

// Load fills the form from task
func (v *EditView) Load(task models.Task) tea.Cmd {
	v.task = task
	v.title.SetValue(task.Title)
	v.desc.SetValue(task.Description)
	v.due.SetValue(FormatDue(task.Due))
	v.priority = task.Priority
	v.status = task.Status
	v.err = ""
	v.confirmingDelete = false
	v.focusIdx = editTitle
	v.updateFocus()
	return textinput.Blink
}

func (v *EditView) Init() tea.Cmd { return nil }

// Capturing reports whether keys are going into a text field
func (v *EditView) Capturing() bool {
	if v.confirmingDelete {
		return true
	}
	return v.focusIdx == editTitle || v.focusIdx == editDesc || v.focusIdx == editDue
}

// Update handles messages
func (v *EditView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		inputWidth := clamp(styles.ContentWidth(v.width)-10, 20, 50)
		v.desc.SetWidth(inputWidth)
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		return v.updateEditing(msg)
	}
	return v, nil
}

func (v *EditView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.state.CloseEditor()
		return v, nil

	case key.Matches(msg, v.keys.Save):
		v.save()
		return v, nil

	case msg.String() == "ctrl+d":
		v.confirmingDelete = true
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % editFieldCount
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.BackTab):
		v.focusIdx = (v.focusIdx + editFieldCount - 1) % editFieldCount
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter), msg.String() == " ":
		switch v.focusIdx {
		case editPriority:
			v.priority = v.priority.Next()
			return v, nil
		case editStatus:
			v.status = v.status.Toggle()
			return v, nil
		case editSave:
			v.save()
			return v, nil
		case editTitle, editDue:
			if msg.String() == "enter" {
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}
		}
		// the description takes enter as a newline
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case editTitle:
		v.title, cmd = v.title.Update(msg)
	case editDesc:
		v.desc, cmd = v.desc.Update(msg)
	case editDue:
		v.due, cmd = v.due.Update(msg)
	}
	return v, cmd
}

func (v *EditView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		v.state.DeleteTask(v.task.ID)
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *EditView) updateFocus() {
	v.title.Blur()
	v.desc.Blur()
	v.due.Blur()

	switch v.focusIdx {
	case editTitle:
		v.title.Focus()
	case editDesc:
		v.desc.Focus()
	case editDue:
		v.due.Focus()
	}
}

func (v *EditView) save() {
	due, err := ParseDue(v.due.Value(), v.state.Now().Location())
	if err != nil {
		v.err = err.Error()
		v.focusIdx = editDue
		v.updateFocus()
		return
	}

	task := v.task
	task.Title = v.title.Value()
	task.Description = strings.TrimSpace(v.desc.Value())
	task.Priority = v.priority
	task.Status = v.status
	task.Due = due
	if _, err := v.state.SaveTask(task); err != nil {
		v.err = errorMessage(err)
		return
	}
	v.state.CloseEditor()
}

// View renders the view
func (v *EditView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	styleFor := func(idx int) lipgloss.Style {
		if idx == v.focusIdx {
			return s.InputFocused
		}
		return s.Input
	}
	btnStyle := s.Button
	if v.focusIdx == editSave {
		btnStyle = s.ButtonFocused
	}

	status := "pending"
	if v.status == models.StatusCompleted {
		status = "completed"
	}

	// Dynamic input width based on content width
	inputWidth := clamp(contentWidth-6, 20, 50)

	rows := []string{
		s.Title.Render("Edit Task"),
		"",
		"Title:",
		styleFor(editTitle).Width(inputWidth).Render(v.title.View()),
		"Description:",
		styleFor(editDesc).Render(v.desc.View()),
		"Priority:",
		styleFor(editPriority).Width(inputWidth).Render(priorityBadge(s, v.priority)),
		"Due:",
		styleFor(editDue).Width(inputWidth).Render(v.due.View()),
		"Status:",
		styleFor(editStatus).Width(inputWidth).Render(checkbox(models.Task{Status: v.status}) + " " + status),
		"",
		btnStyle.Render(" Save "),
	}
	if v.err != "" {
		rows = append(rows, "", s.Error.Render(v.err))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • Space: change • Ctrl+S: save • Ctrl+D: delete • Esc: cancel"))

	return centered(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}

func (v *EditView) renderDeleteConfirm() string {
	s := v.styles

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(v.task.Title),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	return centered(content, v.width, v.height)
}
