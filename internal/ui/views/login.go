package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/app"
	"github.com/tgienger/taskflow/internal/authapi"
	"github.com/tgienger/taskflow/internal/ui/keys"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

type loginMode int

const (
	modeLogin loginMode = iota
	modeRegister
)

type authResultMsg struct {
	resp *authapi.AuthResponse
	err  error
}

// LoginView is the gate shown while no one is signed in
type LoginView struct {
	state  *app.App
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	mode     loginMode
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focusIdx int // login: 0=email, 1=password, 2=submit; register adds name first

	spinner spinner.Model
	loading bool
	err     string
}

// NewLoginView creates the sign-in form
func NewLoginView(state *app.App, s *styles.Styles) *LoginView {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 60

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	v := &LoginView{
		state:    state,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		name:     name,
		email:    email,
		password: password,
		spinner:  sp,
	}
	v.updateFocus()
	return v
}

// Init starts the cursor blinking
func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// Capturing reports whether keys are going into a text field
func (v *LoginView) Capturing() bool { return true }

// Reset clears the form, showing notice as the error line
func (v *LoginView) Reset(notice string) {
	v.name.Reset()
	v.email.Reset()
	v.password.Reset()
	v.loading = false
	v.err = notice
	v.focusIdx = 0
	v.updateFocus()
}

func (v *LoginView) fields() []*textinput.Model {
	if v.mode == modeRegister {
		return []*textinput.Model{&v.name, &v.email, &v.password}
	}
	return []*textinput.Model{&v.email, &v.password}
}

// Update handles messages
func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case authResultMsg:
		v.loading = false
		if msg.err != nil {
			v.err = errorMessage(msg.err)
			return v, nil
		}
		user, err := v.state.Establish(msg.resp)
		if err != nil {
			v.err = errorMessage(err)
			return v, nil
		}
		v.Reset("")
		return v, func() tea.Msg { return LoggedIn{User: user} }

	case tea.KeyMsg:
		if v.loading {
			return v, nil
		}
		return v.updateForm(msg)
	}
	return v, nil
}

func (v *LoginView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(v.fields()) + 1

	switch {
	case key.Matches(msg, v.keys.Mode):
		if v.mode == modeLogin {
			v.mode = modeRegister
		} else {
			v.mode = modeLogin
		}
		v.err = ""
		v.focusIdx = 0
		v.updateFocus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Tab), msg.String() == "down":
		v.focusIdx = (v.focusIdx + 1) % n
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.BackTab), msg.String() == "up":
		v.focusIdx = (v.focusIdx + n - 1) % n
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < n-1 {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		return v, v.submit()
	}

	if v.focusIdx >= n-1 {
		return v, nil
	}
	field := v.fields()[v.focusIdx]
	var cmd tea.Cmd
	*field, cmd = field.Update(msg)
	return v, cmd
}

func (v *LoginView) updateFocus() {
	v.name.Blur()
	v.email.Blur()
	v.password.Blur()
	if fields := v.fields(); v.focusIdx < len(fields) {
		fields[v.focusIdx].Focus()
	}
}

func (v *LoginView) submit() tea.Cmd {
	v.loading = true
	v.err = ""

	state := v.state
	mode := v.mode
	name, email, password := v.name.Value(), v.email.Value(), v.password.Value()
	request := func() tea.Msg {
		var (
			resp *authapi.AuthResponse
			err  error
		)
		if mode == modeRegister {
			resp, err = state.SignUp(context.Background(), name, email, password)
		} else {
			resp, err = state.SignIn(context.Background(), email, password)
		}
		return authResultMsg{resp: resp, err: err}
	}
	return tea.Batch(v.spinner.Tick, request)
}

// View renders the view
func (v *LoginView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 40)

	loginTab, registerTab := s.TabActive, s.Tab
	title, action := "Sign in", " Sign in "
	if v.mode == modeRegister {
		loginTab, registerTab = s.Tab, s.TabActive
		title, action = "Create an account", " Register "
	}

	rows := []string{
		s.Title.Render("taskflow"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, loginTab.Render("Sign in"), " ", registerTab.Render("Register")),
		"",
		s.TitleMuted.Render(title),
		"",
	}

	labels := []string{"Email:", "Password:"}
	if v.mode == modeRegister {
		labels = []string{"Name:", "Email:", "Password:"}
	}
	for i, field := range v.fields() {
		style := s.Input
		if i == v.focusIdx {
			style = s.InputFocused
		}
		rows = append(rows, labels[i], style.Width(inputWidth).Render(field.View()), "")
	}

	btn := s.Button
	if v.focusIdx == len(v.fields()) {
		btn = s.ButtonFocused
	}
	switch {
	case v.loading:
		rows = append(rows, v.spinner.View()+" "+s.TitleMuted.Render("Contacting server..."))
	default:
		rows = append(rows, btn.Render(action))
	}

	if v.err != "" {
		rows = append(rows, "", s.Error.Render(v.err))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • ↵: submit • Ctrl+R: sign in/register • Ctrl+C: quit"))

	return centered(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}
