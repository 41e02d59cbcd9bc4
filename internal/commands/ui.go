package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskflow/internal/ui"
)

func runUI(cmd *cobra.Command, opts *GlobalOptions) error {
	return withEnv(cmd, opts, func(e *env) error {
		p := tea.NewProgram(ui.NewApp(e.state), tea.WithAltScreen())
		_, err := p.Run()
		return err
	})
}
