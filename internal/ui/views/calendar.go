package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/app"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/ui/keys"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

// AgendaDays is how many days from today the calendar lays out
const AgendaDays = 7

// agendaItem is either a day heading or a task under it
type agendaItem struct {
	heading string
	count   int
	task    *models.Task
}

func (i agendaItem) FilterValue() string {
	if i.task != nil {
		return i.task.Title
	}
	return i.heading
}

type agendaDelegate struct {
	styles *styles.Styles
	width  int
}

func (d agendaDelegate) Height() int                               { return 1 }
func (d agendaDelegate) Spacing() int                              { return 0 }
func (d agendaDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d agendaDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(agendaItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	if it.task == nil {
		heading := d.styles.Title.Render(it.heading) + " " +
			d.styles.TitleMuted.Render(fmt.Sprintf("(%d)", it.count))
		if it.count == 0 {
			heading += " " + d.styles.TitleMuted.Render("nothing planned")
		}
		fmt.Fprint(w, heading)
		return
	}

	t := *it.task
	title := t.Title
	if t.Completed() {
		title = d.styles.TaskDone.Render(title)
	}
	line := "  " + checkbox(t) + " " + title
	if t.Due != nil && (t.Due.Hour() != 0 || t.Due.Minute() != 0) {
		line += d.styles.TitleMuted.Render(" " + t.Due.Format("15:04"))
	}

	style := d.styles.ListItem.Width(width)
	if selected {
		style = d.styles.ListSelected.Width(width)
	}
	fmt.Fprint(w, style.Render(line))
}

// CalendarView lists tasks grouped by calendar day
type CalendarView struct {
	state    *app.App
	styles   *styles.Styles
	keys     keys.KeyMap
	list     list.Model
	delegate *agendaDelegate
	width    int
	height   int
}

// NewCalendarView creates the calendar page
func NewCalendarView(state *app.App, s *styles.Styles) *CalendarView {
	delegate := &agendaDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Calendar"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	return &CalendarView{
		state:    state,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		list:     l,
		delegate: delegate,
	}
}

func (v *CalendarView) Init() tea.Cmd { return nil }

// Capturing reports whether keys are going into a text field
func (v *CalendarView) Capturing() bool { return false }

// Refresh rebuilds the agenda from the task store
func (v *CalendarView) Refresh() {
	groups, err := v.state.Agenda(AgendaDays)
	if err != nil {
		v.list.SetItems(nil)
		return
	}

	var items []list.Item
	for _, g := range groups {
		items = append(items, agendaItem{heading: g.Label, count: len(g.Tasks)})
		for i := range g.Tasks {
			items = append(items, agendaItem{task: &g.Tasks[i]})
		}
	}
	v.list.SetItems(items)
}

func (v *CalendarView) selectedTask() (models.Task, bool) {
	it, ok := v.list.SelectedItem().(agendaItem)
	if !ok || it.task == nil {
		return models.Task{}, false
	}
	return *it.task, true
}

// Update handles messages
func (v *CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-4)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Toggle):
			if t, ok := v.selectedTask(); ok {
				v.state.ToggleTask(t.ID)
				v.Refresh()
			}
			return v, nil
		case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Edit):
			if t, ok := v.selectedTask(); ok {
				v.state.EditTask(t.ID)
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the view
func (v *CalendarView) View() string {
	help := v.styles.Help.Render(
		fmt.Sprintf("%s move • %s done/undo • %s edit",
			v.styles.HelpKey.Render("↑↓"),
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("↵"),
		),
	)
	if len(v.list.Items()) == 0 {
		return styles.CenterView(v.styles.TitleMuted.Render("Nothing on the calendar.")+"\n"+help, v.width, v.height)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, v.list.View(), help)
	return styles.CenterView(content, v.width, v.height)
}
