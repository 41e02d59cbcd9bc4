package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addVersion(topLevel *cobra.Command, info BuildInfo) {
	shortened := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the taskflow version.",
		Example: `
taskflow version
`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if shortened {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "taskflow %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.Date)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")

	topLevel.AddCommand(cmd)
}
