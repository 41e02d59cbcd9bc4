package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	taskapp "github.com/tgienger/taskflow/internal/app"
	"github.com/tgienger/taskflow/internal/nav"
	"github.com/tgienger/taskflow/internal/ui/keys"
	"github.com/tgienger/taskflow/internal/ui/styles"
	"github.com/tgienger/taskflow/internal/ui/views"
)

// page is a view shown behind the gate
type page interface {
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
	Capturing() bool
}

// nothing shown yet, or signed out
const noPage nav.View = -1

// navHeight is the number of lines the nav bar takes
const navHeight = 2

// tab order of the nav bar, matching keys 1-4
var tabs = []struct {
	view  nav.View
	label string
}{
	{nav.ViewTasks, "Tasks"},
	{nav.ViewCalendar, "Calendar"},
	{nav.ViewSummary, "Summary"},
	{nav.ViewProfile, "Profile"},
}

// App is the root model. It shows the login gate until a session exists,
// then the page chosen by the navigation state.
type App struct {
	state  *taskapp.App
	styles *styles.Styles
	keys   keys.KeyMap

	login    *views.LoginView
	tasks    *views.TaskListView
	editor   *views.EditView
	calendar *views.CalendarView
	summary  *views.SummaryView
	profile  *views.ProfileView

	shown  nav.View
	width  int
	height int
}

// NewApp creates the root model over state
func NewApp(state *taskapp.App) *App {
	styles.SetDark(state.DarkMode())
	s := styles.NewStyles()

	return &App{
		state:    state,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		login:    views.NewLoginView(state, s),
		tasks:    views.NewTaskListView(state, s),
		editor:   views.NewEditView(state, s),
		calendar: views.NewCalendarView(state, s),
		summary:  views.NewSummaryView(state, s),
		profile:  views.NewProfileView(state, s),
		shown:    noPage,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.login.Init(), a.sync())
}

func (a *App) pages() []page {
	return []page{a.tasks, a.editor, a.calendar, a.summary, a.profile}
}

func (a *App) current() page {
	view, err := a.state.Page()
	if err != nil {
		return a.login
	}
	switch view {
	case nav.ViewEditTask:
		return a.editor
	case nav.ViewCalendar:
		return a.calendar
	case nav.ViewSummary:
		return a.summary
	case nav.ViewProfile:
		return a.profile
	}
	return a.tasks
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Always update every view size since they all persist
		a.login.Update(msg)
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-navHeight, 0)}
		for _, p := range a.pages() {
			p.Update(inner)
		}
		return a, nil

	case views.LoggedIn:
		return a, a.sync()

	case views.SessionExpired:
		a.login.Reset(msg.Message)
		return a, a.sync()

	case tea.KeyMsg:
		if model, cmd, handled := a.handleGlobalKey(msg); handled {
			return model, cmd
		}
		_, cmd := a.current().Update(msg)
		return a, tea.Batch(cmd, a.sync())
	}

	// results of async work and timers go to every view; each ignores
	// what it did not start
	cmds := []tea.Cmd{}
	_, cmd := a.login.Update(msg)
	cmds = append(cmds, cmd)
	for _, p := range a.pages() {
		_, cmd := p.Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, a.sync())
	return a, tea.Batch(cmds...)
}

func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case msg.String() == "ctrl+c":
		return a, tea.Quit, true

	case key.Matches(msg, a.keys.Theme):
		styles.SetDark(a.state.ToggleDarkMode())
		*a.styles = *styles.NewStyles()
		return a, nil, true
	}

	if !a.state.Authenticated() {
		return a, nil, false
	}

	if key.Matches(msg, a.keys.Logout) {
		a.state.Logout()
		a.login.Reset("")
		return a, a.sync(), true
	}

	if a.current().Capturing() {
		return a, nil, false
	}
	if msg.String() == "q" {
		return a, tea.Quit, true
	}
	for i, binding := range a.keys.Pages {
		if key.Matches(msg, binding) {
			a.state.Navigate(tabs[i].view)
			return a, a.sync(), true
		}
	}
	return a, nil, false
}

// sync prepares a page when navigation moved to it
func (a *App) sync() tea.Cmd {
	view, err := a.state.Page()
	if err != nil {
		a.shown = noPage
		return nil
	}
	if view == a.shown {
		return nil
	}
	a.shown = view

	switch view {
	case nav.ViewEditTask:
		if t, ok := a.state.Editing(); ok {
			return a.editor.Load(t)
		}
	case nav.ViewProfile:
		if p, err := a.state.Profile(); err == nil {
			return a.profile.Load(p)
		}
	case nav.ViewCalendar:
		a.calendar.Refresh()
	}
	return nil
}

func (a *App) View() string {
	if !a.state.Authenticated() {
		return a.login.View()
	}
	return a.renderNav() + "\n\n" + a.current().View()
}

func (a *App) renderNav() string {
	s := a.styles
	active, _ := a.state.Page()
	if active == nav.ViewEditTask {
		active = nav.ViewTasks
	}

	var parts []string
	for i, t := range tabs {
		style := s.Tab
		if t.view == active {
			style = s.TabActive
		}
		parts = append(parts, style.Render(string(rune('1'+i))+" "+t.label))
	}

	who := ""
	if p, err := a.state.Profile(); err == nil && p.FullName() != "" {
		who = p.FullName()
	} else if user, ok := a.state.User(); ok {
		who = user.Name
	}
	theme := "light"
	if a.state.DarkMode() {
		theme = "dark"
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		strings.Join(parts, " "),
		"  ",
		s.TitleMuted.Render(who+" · "+theme),
	)
	return styles.CenterView(bar, a.width, 1)
}
