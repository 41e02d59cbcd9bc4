package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskflow/internal/app"
	"github.com/tgienger/taskflow/internal/ui/styles"
)

// SummaryView shows completion progress
type SummaryView struct {
	state  *app.App
	styles *styles.Styles
	bar    progress.Model
	width  int
	height int
}

// NewSummaryView creates the summary page
func NewSummaryView(state *app.App, s *styles.Styles) *SummaryView {
	return &SummaryView{
		state:  state,
		styles: s,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (v *SummaryView) Init() tea.Cmd { return nil }

// Capturing reports whether keys are going into a text field
func (v *SummaryView) Capturing() bool { return false }

// Update handles messages
func (v *SummaryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
		v.bar.Width = clamp(styles.ContentWidth(v.width)-10, 10, 60)
	}
	return v, nil
}

// View renders the view
func (v *SummaryView) View() string {
	s := v.styles
	counts, err := v.state.Counts()
	if err != nil {
		return ""
	}

	stat := func(label string, n int, style lipgloss.Style) string {
		return s.Button.Render(lipgloss.JoinVertical(lipgloss.Center,
			style.Render(fmt.Sprintf("%d", n)),
			s.TitleMuted.Render(label),
		))
	}

	headline := fmt.Sprintf("%d%% complete", counts.CompletionPercent)
	if counts.Total == 0 {
		headline = "No tasks yet"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Summary"),
		"",
		s.TitleMuted.Render(headline),
		v.bar.ViewAs(float64(counts.CompletionPercent)/100),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			stat("pending", counts.Pending, s.TaskPriority),
			" ",
			stat("completed", counts.Completed, s.Success),
			" ",
			stat("urgent", counts.Urgent, s.PriorityHigh),
		),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%d tasks in total", counts.Total)),
	)
	return centered(content, v.width, v.height)
}
