package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskflow/internal/printers"
	"github.com/tgienger/taskflow/internal/projection"
)

func addList(topLevel *cobra.Command, opts *GlobalOptions) {
	filter := string(projection.FilterAll)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, pending first.",
		Example: `
taskflow list
taskflow list --filter pending
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, ok := projection.ParseFilter(filter)
			if !ok {
				return fmt.Errorf("unknown filter %q (want all, pending or completed)", filter)
			}
			return withEnv(cmd, opts, func(e *env) error {
				tasks, err := e.state.Visible(mode)
				if err != nil {
					return err
				}
				pp := e.printer(cmd)
				pp.TitleWithCount("Tasks", len(tasks))
				pp.Tasks(tasks)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", filter, "One of all, pending or completed.")

	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command, opts *GlobalOptions) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task due today.",
		Example: `
taskflow add Buy milk
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(e *env) error {
				task, err := e.state.AddTask(strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n",
					color.New(color.FgHiYellow).Sprint(printers.ShortID(task.ID)), task.Title)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addDone(topLevel *cobra.Command, opts *GlobalOptions) {
	cmd := &cobra.Command{
		Use:     "done",
		Aliases: []string{"toggle"},
		Short:   "Mark a task completed, or pending again if it was done.",
		Example: `
taskflow done <task id>
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(e *env) error {
				id, err := e.state.Resolve(args[0])
				if err != nil {
					return err
				}
				task, _, err := e.state.ToggleTask(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", task.Title, task.Status)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command, opts *GlobalOptions) {
	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"delete"},
		Short:   "Delete a task.",
		Example: `
taskflow rm <task id>
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(e *env) error {
				id, err := e.state.Resolve(args[0])
				if err != nil {
					return err
				}
				task, err := e.state.Task(id)
				if err != nil {
					return err
				}
				if _, err := e.state.DeleteTask(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", task.Title)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command, opts *GlobalOptions) {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one task in full.",
		Example: `
taskflow show <task id>
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, opts, func(e *env) error {
				id, err := e.state.Resolve(args[0])
				if err != nil {
					return err
				}
				task, err := e.state.Task(id)
				if err != nil {
					return err
				}
				e.printer(cmd).Task(task)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}
