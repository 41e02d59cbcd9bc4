package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func addLogin(topLevel *cobra.Command, opts *GlobalOptions) {
	email := ""
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the auth service.",
		Example: `
taskflow login --email ana@example.com
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(e *env) error {
				password, err := readPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
				user, err := e.state.Login(cmd.Context(), email, password)
				if err != nil {
					return err
				}
				_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email.")
	_ = cmd.MarkFlagRequired("email")

	topLevel.AddCommand(cmd)
}

func addRegister(topLevel *cobra.Command, opts *GlobalOptions) {
	name := ""
	email := ""
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in with it.",
		Example: `
taskflow register --name Ana --email ana@example.com
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(e *env) error {
				password, err := readPassword(cmd, "Choose a password: ")
				if err != nil {
					return err
				}
				user, err := e.state.Register(cmd.Context(), name, email, password)
				if err != nil {
					return err
				}
				_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are signed in.\n", user.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name.")
	cmd.Flags().StringVar(&email, "email", "", "Account email.")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command, opts *GlobalOptions) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(e *env) error {
				e.state.Logout()
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command, opts *GlobalOptions) {
	check := false
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user.",
		Example: `
taskflow whoami
taskflow whoami --check
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(e *env) error {
				if check {
					if err := e.state.Verify(cmd.Context()); err != nil {
						return err
					}
				}
				user, ok := e.state.User()
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
					return nil
				}
				profile, err := e.state.Profile()
				if err != nil {
					return err
				}
				e.printer(cmd).User(user, profile)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Ask the auth service whether the session is still valid.")

	topLevel.AddCommand(cmd)
}

// readPassword prompts on stderr. A terminal gets a hidden prompt; anything
// else is read as a single line.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", errors.New("no password given on stdin")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
