package commands

import (
	"github.com/spf13/cobra"
)

func addSummary(topLevel *cobra.Command, opts *GlobalOptions) {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show completion progress.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(e *env) error {
				counts, err := e.state.Counts()
				if err != nil {
					return err
				}
				e.printer(cmd).Summary(counts)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addAgenda(topLevel *cobra.Command, opts *GlobalOptions) {
	days := 7
	cmd := &cobra.Command{
		Use:     "agenda",
		Aliases: []string{"calendar"},
		Short:   "Show tasks grouped by day.",
		Example: `
taskflow agenda
taskflow agenda --days 3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(e *env) error {
				groups, err := e.state.Agenda(days)
				if err != nil {
					return err
				}
				e.printer(cmd).Agenda(groups)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", days, "Number of days from today to lay out.")

	topLevel.AddCommand(cmd)
}
