package views

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/app"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/ui/keys"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

type profileSavedMsg struct {
	save *app.ProfileSave
}

// ProfileView edits the display profile
type ProfileView struct {
	state  *app.App
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	name     textinput.Model
	lastName textinput.Model
	avatar   textinput.Model
	focusIdx int // 0=name, 1=last name, 2=avatar, 3=save

	spinner spinner.Model
	saving  bool

	toast    string
	toastErr bool
	toastID  int
}

// NewProfileView creates the profile page
func NewProfileView(state *app.App, s *styles.Styles) *ProfileView {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 60

	lastName := textinput.New()
	lastName.Placeholder = "Last name"
	lastName.CharLimit = 60

	avatar := textinput.New()
	avatar.Placeholder = "https://..."
	avatar.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &ProfileView{
		state:    state,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		name:     name,
		lastName: lastName,
		avatar:   avatar,
		spinner:  sp,
	}
}

// Load fills the form from the stored profile
func (v *ProfileView) Load(p models.UserProfile) tea.Cmd {
	v.name.SetValue(p.Name)
	v.lastName.SetValue(p.LastName)
	v.avatar.SetValue(p.AvatarURL)
	v.focusIdx = 0
	v.updateFocus()
	return textinput.Blink
}

func (v *ProfileView) Init() tea.Cmd { return nil }

// Capturing reports whether keys are going into a text field
func (v *ProfileView) Capturing() bool { return v.focusIdx < 3 }

func (v *ProfileView) updateFocus() {
	v.name.Blur()
	v.lastName.Blur()
	v.avatar.Blur()
	switch v.focusIdx {
	case 0:
		v.name.Focus()
	case 1:
		v.lastName.Focus()
	case 2:
		v.avatar.Focus()
	}
}

// Update handles messages
func (v *ProfileView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case spinner.TickMsg:
		if !v.saving {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case profileSavedMsg:
		v.saving = false
		err := v.state.FinishProfileSave(msg.save)
		if errors.Is(err, app.ErrStaleSave) {
			return v, nil
		}
		if err != nil && !v.state.Authenticated() {
			return v, func() tea.Msg { return SessionExpired{Message: errorMessage(err)} }
		}
		if err != nil {
			return v, v.showToast(errorMessage(err), true)
		}
		return v, v.showToast("Profile saved", false)

	case toastExpiredMsg:
		if msg.id == v.toastID {
			v.toast = ""
		}
		return v, nil

	case tea.KeyMsg:
		if v.saving {
			return v, nil
		}
		return v.updateForm(msg)
	}
	return v, nil
}

func (v *ProfileView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Save):
		return v, v.save()

	case key.Matches(msg, v.keys.Back):
		v.focusIdx = 3
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 4
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.BackTab):
		v.focusIdx = (v.focusIdx + 3) % 4
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx < 3 {
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
		return v, v.save()
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.name, cmd = v.name.Update(msg)
	case 1:
		v.lastName, cmd = v.lastName.Update(msg)
	case 2:
		v.avatar, cmd = v.avatar.Update(msg)
	}
	return v, cmd
}

func (v *ProfileView) save() tea.Cmd {
	save, err := v.state.StartProfileSave(models.UserProfile{
		Name:      v.name.Value(),
		LastName:  v.lastName.Value(),
		AvatarURL: v.avatar.Value(),
	})
	if err != nil {
		return func() tea.Msg { return SessionExpired{Message: errorMessage(err)} }
	}
	v.saving = true
	v.toast = ""
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		save.Run(context.Background())
		return profileSavedMsg{save: save}
	})
}

func (v *ProfileView) showToast(text string, isErr bool) tea.Cmd {
	v.toastID++
	v.toast = text
	v.toastErr = isErr
	return expireToast(v.toastID)
}

// View renders the view
func (v *ProfileView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	styleFor := func(idx int) lipgloss.Style {
		if idx == v.focusIdx {
			return s.InputFocused
		}
		return s.Input
	}
	btn := s.Button
	if v.focusIdx == 3 {
		btn = s.ButtonFocused
	}

	email := ""
	if user, ok := v.state.User(); ok {
		email = user.Email
	}

	rows := []string{
		s.Title.Render("Profile"),
		s.TitleMuted.Render(email),
		"",
		"Name:",
		styleFor(0).Width(inputWidth).Render(v.name.View()),
		"Last name:",
		styleFor(1).Width(inputWidth).Render(v.lastName.View()),
		"Avatar URL:",
		styleFor(2).Width(inputWidth).Render(v.avatar.View()),
		"",
	}
	if v.saving {
		rows = append(rows, v.spinner.View()+" "+s.TitleMuted.Render("Saving..."))
	} else {
		rows = append(rows, btn.Render(" Save "))
	}
	if v.toast != "" {
		style := s.Success
		if v.toastErr {
			style = s.Error
		}
		rows = append(rows, "", style.Render(v.toast))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: leave fields"))

	return centered(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}
