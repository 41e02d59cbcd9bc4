package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/app"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/projection"
	"github.com/tgienger/taskflow/internal/ui/keys"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

// TaskListView shows the task collection with a quick-add input
type TaskListView struct {
	state  *app.App
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	filter   projection.FilterMode
	cursor   int
	scrollY  int
	quickAdd textinput.Model
	adding   bool

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewTaskListView creates the task list
func NewTaskListView(state *app.App, s *styles.Styles) *TaskListView {
	quickAdd := textinput.New()
	quickAdd.Placeholder = "What needs doing?"
	quickAdd.CharLimit = 200

	return &TaskListView{
		state:    state,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		filter:   projection.FilterAll,
		quickAdd: quickAdd,
	}
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return nil
}

// Capturing reports whether keys are going into a text field
func (v *TaskListView) Capturing() bool { return v.adding || v.confirmingDelete }

func (v *TaskListView) visible() []models.Task {
	tasks, err := v.state.Visible(v.filter)
	if err != nil {
		return nil
	}
	return tasks
}

func (v *TaskListView) selected() (models.Task, bool) {
	tasks := v.visible()
	if len(tasks) == 0 {
		return models.Task{}, false
	}
	v.cursor = clamp(v.cursor, 0, len(tasks)-1)
	return tasks[v.cursor], true
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.quickAdd.Width = clamp(styles.ContentWidth(v.width)-12, 10, 50)
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.adding {
			return v.updateAdding(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.visible())-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if t, ok := v.selected(); ok {
			v.state.ToggleTask(t.ID)
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Edit):
		if t, ok := v.selected(); ok {
			v.state.EditTask(t.ID)
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		// new tasks open straight in the editor
		t, err := v.state.AddTask("")
		if err == nil {
			v.state.EditTask(t.ID)
		}
		return v, nil

	case key.Matches(msg, v.keys.Add):
		v.adding = true
		v.quickAdd.Reset()
		v.quickAdd.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = t.ID
			v.deleteTargetName = t.Title
		}
		return v, nil

	case key.Matches(msg, v.keys.Filter):
		v.filter = v.filter.Next()
		v.cursor = 0
		v.scrollY = 0
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.adding = false
		v.quickAdd.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if title := strings.TrimSpace(v.quickAdd.Value()); title != "" {
			v.state.AddTask(title)
			v.cursor = 0
			v.scrollY = 0
		}
		v.quickAdd.Reset()
		return v, nil
	}

	var cmd tea.Cmd
	v.quickAdd, cmd = v.quickAdd.Update(msg)
	return v, cmd
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.state.DeleteTask(v.deleteTargetID)
		v.confirmingDelete = false
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) visibleItems() int {
	// Each task item is 2 lines (title + details) + 1 margin = 3 lines
	availableHeight := max(v.height-12, 3)
	return max(availableHeight/3, 1)
}

func (v *TaskListView) ensureVisible() {
	visibleItems := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	greeting := "Hello!"
	if p, err := v.state.Profile(); err == nil && p.Name != "" {
		greeting = fmt.Sprintf("Hello, %s!", p.Name)
	}
	counts, _ := v.state.Counts()
	pending := fmt.Sprintf("You have %d pending tasks", counts.Pending)
	if counts.Pending == 1 {
		pending = "You have 1 pending task"
	}

	inputStyle := s.Input
	if v.adding {
		inputStyle = s.InputFocused
	}
	addBox := inputStyle.Width(clamp(contentWidth-20, 10, 50)).Render(v.quickAdd.View())
	filterBtn := s.Button.Render("Show: " + string(v.filter))

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(greeting),
		s.TitleMuted.Render(pending),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, addBox, "  ", filterBtn),
	)
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles
	tasks := v.visible()

	if len(tasks) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'a' to add one.")
	}
	v.cursor = clamp(v.cursor, 0, len(tasks)-1)
	v.ensureVisible()

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(tasks))
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(tasks[i], i == v.cursor && !v.adding))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	titleLine := checkbox(task) + " " + task.Title
	if task.Completed() {
		titleLine = checkbox(task) + " " + s.TaskDone.Render(task.Title)
	}
	details := priorityBadge(s, task.Priority) + "  " +
		s.TitleMuted.Render(projection.DueLabel(task.Due, v.state.Now()))

	var titleStyle, detailStyle lipgloss.Style
	if selected {
		titleStyle = s.ListSelected.Width(width)
		detailStyle = s.ListSelected.Width(width)
	} else {
		titleStyle = s.ListItem.Width(width)
		detailStyle = s.ListItem.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(titleLine),
		detailStyle.Render("    "+details),
	) + "\n"
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	if v.adding {
		return v.styles.Help.Render(
			fmt.Sprintf("%s add • %s done adding",
				v.styles.HelpKey.Render("↵"),
				v.styles.HelpKey.Render("esc"),
			),
		)
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s toggle • %s edit • %s add • %s new • %s del • %s filter • %s help • %s quit",
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("a"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("?"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles

	helpItems := []string{
		s.HelpKey.Render("space") + "   mark done / pending",
		s.HelpKey.Render("↵ e") + "     edit task",
		s.HelpKey.Render("a") + "       quick add",
		s.HelpKey.Render("n") + "       new task in editor",
		s.HelpKey.Render("d") + "       delete task",
		s.HelpKey.Render("f") + "       cycle all/pending/completed",
		s.HelpKey.Render("1-4") + "     switch page",
		s.HelpKey.Render("ctrl+t") + "  toggle theme",
		s.HelpKey.Render("ctrl+l") + "  log out",
		s.HelpKey.Render("q") + "       quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)
	return centered(s.FilterBar.Render(content), v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	return centered(content, v.width, v.height)
}
